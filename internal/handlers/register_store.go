package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RegistrationStore is the slice of the registeredStudents collection
// the registration routes touch. FindByEmail reports a missing record
// with mongo.ErrNoDocuments.
type RegistrationStore interface {
	Insert(ctx context.Context, student bson.M) (interface{}, error)
	ListAll(ctx context.Context) ([]bson.M, error)
	FindByEmail(ctx context.Context, email string) (bson.M, error)
	Upsert(ctx context.Context, id primitive.ObjectID, set bson.M) (*mongo.UpdateResult, error)
}

type mongoRegistrationStore struct {
	registrations *mongo.Collection
}

func NewRegistrationStore(registrations *mongo.Collection) RegistrationStore {
	return &mongoRegistrationStore{registrations: registrations}
}

func (s *mongoRegistrationStore) Insert(ctx context.Context, student bson.M) (interface{}, error) {
	res, err := s.registrations.InsertOne(ctx, student)
	if err != nil {
		return nil, err
	}
	return res.InsertedID, nil
}

func (s *mongoRegistrationStore) ListAll(ctx context.Context) ([]bson.M, error) {
	cursor, err := s.registrations.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	students := []bson.M{}
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (s *mongoRegistrationStore) FindByEmail(ctx context.Context, email string) (bson.M, error) {
	var student bson.M
	err := s.registrations.FindOne(ctx, bson.M{"email": email}).Decode(&student)
	return student, err
}

func (s *mongoRegistrationStore) Upsert(ctx context.Context, id primitive.ObjectID, set bson.M) (*mongo.UpdateResult, error) {
	return s.registrations.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}, options.Update().SetUpsert(true))
}
