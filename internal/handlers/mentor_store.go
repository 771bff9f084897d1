package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lingoverse/lingoverse-server/internal/models"
)

// MentorStore is the slice of the mentors collection the mentor routes
// touch. Upsert applies the given field set to the profile keyed by
// email, inserting when absent.
type MentorStore interface {
	List(ctx context.Context) ([]models.Mentor, error)
	Upsert(ctx context.Context, email string, set bson.M) (*mongo.UpdateResult, error)
}

type mongoMentorStore struct {
	mentors *mongo.Collection
}

func NewMentorStore(mentors *mongo.Collection) MentorStore {
	return &mongoMentorStore{mentors: mentors}
}

func (s *mongoMentorStore) List(ctx context.Context) ([]models.Mentor, error) {
	cursor, err := s.mentors.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	mentors := []models.Mentor{}
	if err := cursor.All(ctx, &mentors); err != nil {
		return nil, err
	}
	return mentors, nil
}

func (s *mongoMentorStore) Upsert(ctx context.Context, email string, set bson.M) (*mongo.UpdateResult, error) {
	return s.mentors.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set}, options.Update().SetUpsert(true))
}
