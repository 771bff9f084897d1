package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lingoverse/lingoverse-server/internal/models"
)

// fakeEnrollmentStore is an in-memory EnrollmentStore with the same
// atomicity contract as the Mongo implementation: TakeSeat only
// succeeds while seats remain.
type fakeEnrollmentStore struct {
	mu           sync.Mutex
	course       models.Course
	courseExists bool
	enrollments  []bson.M
	cartItems    map[primitive.ObjectID]bool
	insertErr    error
	cartErr      error
	released     int
}

func newFakeStore(course models.Course) *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		course:       course,
		courseExists: true,
		cartItems:    map[primitive.ObjectID]bool{},
	}
}

func (s *fakeEnrollmentStore) FindCourse(_ context.Context, id primitive.ObjectID) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.courseExists || s.course.ID != id {
		return models.Course{}, mongo.ErrNoDocuments
	}
	return s.course, nil
}

func (s *fakeEnrollmentStore) TakeSeat(_ context.Context, id primitive.ObjectID) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.courseExists || s.course.ID != id || s.course.AvailableSeats <= 0 {
		return models.Course{}, mongo.ErrNoDocuments
	}
	s.course.AvailableSeats--
	return s.course, nil
}

func (s *fakeEnrollmentStore) ReleaseSeat(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.course.AvailableSeats++
	s.released++
	return nil
}

func (s *fakeEnrollmentStore) InsertEnrollment(_ context.Context, doc bson.M) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	s.enrollments = append(s.enrollments, doc)
	return primitive.NewObjectID(), nil
}

func (s *fakeEnrollmentStore) RemoveCartItem(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cartErr != nil {
		return 0, s.cartErr
	}
	if !s.cartItems[id] {
		return 0, nil
	}
	delete(s.cartItems, id)
	return 1, nil
}

func testCourse(seats int) models.Course {
	return models.Course{
		ID:             primitive.NewObjectID(),
		CourseName:     "Spanish A1",
		MentorName:     "Maria",
		AvailableSeats: seats,
		CourseFee:      49.99,
	}
}

func TestEnroll_Success(t *testing.T) {
	course := testCourse(3)
	store := newFakeStore(course)
	cartID := primitive.NewObjectID()
	store.cartItems[cartID] = true
	svc := NewEnrollmentService(store)

	payload := bson.M{
		"email":    "a@x.com",
		"courseId": course.ID.Hex(),
		"cartId":   cartID.Hex(),
	}
	result, err := svc.Enroll(context.Background(), course.ID, cartID, payload)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Course.AvailableSeats)
	assert.NotNil(t, result.EnrollmentID)
	assert.Equal(t, int64(1), result.CartRemoved)

	require.Len(t, store.enrollments, 1)
	assert.NotContains(t, store.enrollments[0], "cartId", "cart-linking field must be stripped")
	assert.Equal(t, "a@x.com", store.enrollments[0]["email"])
	assert.Empty(t, store.cartItems)
}

func TestEnroll_CourseNotFound(t *testing.T) {
	store := newFakeStore(testCourse(3))
	store.courseExists = false
	svc := NewEnrollmentService(store)

	_, err := svc.Enroll(context.Background(), store.course.ID, primitive.NewObjectID(), bson.M{})
	assert.ErrorIs(t, err, ErrCourseNotFound)
	assert.Empty(t, store.enrollments)
}

func TestEnroll_NoSeats(t *testing.T) {
	course := testCourse(0)
	store := newFakeStore(course)
	svc := NewEnrollmentService(store)

	_, err := svc.Enroll(context.Background(), course.ID, primitive.NewObjectID(), bson.M{})
	assert.ErrorIs(t, err, ErrNoSeats)
	assert.Empty(t, store.enrollments)
	assert.Equal(t, 0, store.course.AvailableSeats, "seats must never go negative")
}

func TestEnroll_LastSeatRace(t *testing.T) {
	course := testCourse(1)
	store := newFakeStore(course)
	svc := NewEnrollmentService(store)

	cartA := primitive.NewObjectID()
	cartB := primitive.NewObjectID()
	store.cartItems[cartA] = true
	store.cartItems[cartB] = true

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, cartID := range []primitive.ObjectID{cartA, cartB} {
		wg.Add(1)
		go func(i int, cartID primitive.ObjectID) {
			defer wg.Done()
			_, errs[i] = svc.Enroll(context.Background(), course.ID, cartID, bson.M{
				"email":  "a@x.com",
				"cartId": cartID.Hex(),
			})
		}(i, cartID)
	}
	wg.Wait()

	var successes, capacityFailures int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrNoSeats):
			capacityFailures++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, capacityFailures)
	assert.Equal(t, 0, store.course.AvailableSeats)
	assert.Len(t, store.enrollments, 1)
}

func TestEnroll_InsertFailureReleasesSeat(t *testing.T) {
	course := testCourse(2)
	store := newFakeStore(course)
	store.insertErr = errors.New("write failed")
	svc := NewEnrollmentService(store)

	_, err := svc.Enroll(context.Background(), course.ID, primitive.NewObjectID(), bson.M{})
	require.Error(t, err)

	assert.Equal(t, 2, store.course.AvailableSeats, "seat must be released after a failed insert")
	assert.Equal(t, 1, store.released)
}

func TestEnroll_CartCleanupFailureKeepsEnrollment(t *testing.T) {
	course := testCourse(2)
	store := newFakeStore(course)
	store.cartErr = errors.New("delete failed")
	svc := NewEnrollmentService(store)

	result, err := svc.Enroll(context.Background(), course.ID, primitive.NewObjectID(), bson.M{"email": "a@x.com"})
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.CartRemoved)
	assert.Len(t, store.enrollments, 1)
	assert.Equal(t, 1, result.Course.AvailableSeats)
}
