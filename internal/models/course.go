package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is a published course. Pending courses share the same shape and
// live in a separate collection until an admin approves them.
type Course struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CourseName     string             `bson:"course_name" json:"course_name"`
	MentorName     string             `bson:"mentor_name" json:"mentor_name"`
	AvailableSeats int                `bson:"available_seats" json:"available_seats"`
	CourseFee      float64            `bson:"course_fee" json:"course_fee"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	Details        string             `bson:"details,omitempty" json:"details,omitempty"`
}
