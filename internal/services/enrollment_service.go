package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lingoverse/lingoverse-server/internal/models"
)

var (
	// ErrCourseNotFound reports that the referenced course does not exist.
	ErrCourseNotFound = errors.New("no course available")
	// ErrNoSeats reports that the course has no remaining capacity.
	ErrNoSeats = errors.New("no seat available")
)

// EnrollmentStore is the slice of the document store the enrollment flow
// touches. The seat operations must be atomic per document: TakeSeat
// decrements only while available_seats > 0, so two racing enrollments
// for the last seat cannot both succeed.
type EnrollmentStore interface {
	FindCourse(ctx context.Context, id primitive.ObjectID) (models.Course, error)
	TakeSeat(ctx context.Context, id primitive.ObjectID) (models.Course, error)
	ReleaseSeat(ctx context.Context, id primitive.ObjectID) error
	InsertEnrollment(ctx context.Context, doc bson.M) (interface{}, error)
	RemoveCartItem(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// EnrollmentResult carries the three sub-results the API reports back:
// the post-decrement course, the new enrollment id, and how many cart
// items were removed.
type EnrollmentResult struct {
	Course       models.Course
	EnrollmentID interface{}
	CartRemoved  int64
}

// EnrollmentService converts a cart item into a confirmed enrollment
// while adjusting course capacity.
type EnrollmentService struct {
	store EnrollmentStore
}

func NewEnrollmentService(store EnrollmentStore) *EnrollmentService {
	return &EnrollmentService{store: store}
}

// Enroll runs a single enrollment attempt: look up the course, take a
// seat, record the enrollment with the cart-linking field stripped, then
// drop the cart item. If recording fails the seat is released again; a
// failed cart removal is reported through CartRemoved but does not undo
// the enrollment.
func (s *EnrollmentService) Enroll(ctx context.Context, courseID, cartID primitive.ObjectID, payload bson.M) (EnrollmentResult, error) {
	var result EnrollmentResult

	course, err := s.store.FindCourse(ctx, courseID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return result, ErrCourseNotFound
	}
	if err != nil {
		return result, fmt.Errorf("fetch course: %w", err)
	}
	if course.AvailableSeats <= 0 {
		return result, ErrNoSeats
	}

	updated, err := s.store.TakeSeat(ctx, courseID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Lost the race for the last seat between lookup and decrement.
		return result, ErrNoSeats
	}
	if err != nil {
		return result, fmt.Errorf("take seat: %w", err)
	}
	result.Course = updated

	doc := make(bson.M, len(payload))
	for k, v := range payload {
		if k == "cartId" {
			continue
		}
		doc[k] = v
	}
	insertedID, err := s.store.InsertEnrollment(ctx, doc)
	if err != nil {
		if relErr := s.store.ReleaseSeat(ctx, courseID); relErr != nil {
			log.Printf("enrollment: seat release for course %s failed: %v", courseID.Hex(), relErr)
		}
		return result, fmt.Errorf("record enrollment: %w", err)
	}
	result.EnrollmentID = insertedID

	removed, err := s.store.RemoveCartItem(ctx, cartID)
	if err != nil {
		// The enrollment stands; the stale cart item is visible through
		// CartRemoved == 0.
		log.Printf("enrollment: cart cleanup for item %s failed: %v", cartID.Hex(), err)
		removed = 0
	}
	result.CartRemoved = removed
	return result, nil
}

type mongoEnrollmentStore struct {
	courses     *mongo.Collection
	cart        *mongo.Collection
	enrollments *mongo.Collection
}

// NewEnrollmentStore builds the Mongo-backed store the coordinator runs
// against.
func NewEnrollmentStore(courses, cart, enrollments *mongo.Collection) EnrollmentStore {
	return &mongoEnrollmentStore{courses: courses, cart: cart, enrollments: enrollments}
}

func (s *mongoEnrollmentStore) FindCourse(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	var course models.Course
	err := s.courses.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	return course, err
}

func (s *mongoEnrollmentStore) TakeSeat(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	filter := bson.M{"_id": id, "available_seats": bson.M{"$gt": 0}}
	update := bson.M{"$inc": bson.M{"available_seats": -1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var course models.Course
	err := s.courses.FindOneAndUpdate(ctx, filter, update, opts).Decode(&course)
	return course, err
}

func (s *mongoEnrollmentStore) ReleaseSeat(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.courses.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"available_seats": 1}})
	return err
}

func (s *mongoEnrollmentStore) InsertEnrollment(ctx context.Context, doc bson.M) (interface{}, error) {
	res, err := s.enrollments.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return res.InsertedID, nil
}

func (s *mongoEnrollmentStore) RemoveCartItem(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.cart.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
