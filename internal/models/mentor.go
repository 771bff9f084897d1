package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mentor is the profile a mentor maintains about themselves, keyed by
// email rather than by document id.
type Mentor struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	ClassesTaken int                `bson:"classes_taken" json:"classes_taken"`
	Classes      []string           `bson:"classes,omitempty" json:"classes,omitempty"`
	Details      string             `bson:"details,omitempty" json:"details,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
}
