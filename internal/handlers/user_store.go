package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lingoverse/lingoverse-server/internal/models"
)

// UserStore is the slice of the users collection the user routes touch.
// FindByEmail reports a missing user with mongo.ErrNoDocuments.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context, filter bson.M) ([]bson.M, error)
	Insert(ctx context.Context, user bson.M) (interface{}, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role string) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type mongoUserStore struct {
	users *mongo.Collection
}

func NewUserStore(users *mongo.Collection) UserStore {
	return &mongoUserStore{users: users}
}

func (s *mongoUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	return user, err
}

func (s *mongoUserStore) List(ctx context.Context, filter bson.M) ([]bson.M, error) {
	cursor, err := s.users.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []bson.M{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *mongoUserStore) Insert(ctx context.Context, user bson.M) (interface{}, error) {
	res, err := s.users.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	return res.InsertedID, nil
}

func (s *mongoUserStore) SetRole(ctx context.Context, id primitive.ObjectID, role string) (*mongo.UpdateResult, error) {
	return s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
}

func (s *mongoUserStore) Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	return s.users.DeleteOne(ctx, bson.M{"_id": id})
}
