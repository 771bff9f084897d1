package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo wraps the client and database handle for the process lifetime.
// It is constructed once at startup and injected into handlers; nothing
// reaches for a package-level connection.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes and verifies the database connection.
func Connect(uri, dbName string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}
	return &Mongo{client: client, db: client.Database(dbName)}, nil
}

// Close disconnects the client. Call on shutdown.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Collections bundles every collection the API touches.
type Collections struct {
	Users          *mongo.Collection
	Messages       *mongo.Collection
	Courses        *mongo.Collection
	PendingCourses *mongo.Collection
	Mentors        *mongo.Collection
	Registrations  *mongo.Collection
	Cart           *mongo.Collection
	Enrollments    *mongo.Collection
}

func (m *Mongo) Collections() *Collections {
	return &Collections{
		Users:          m.db.Collection("users"),
		Messages:       m.db.Collection("messages"),
		Courses:        m.db.Collection("courses"),
		PendingCourses: m.db.Collection("pendingCourse"),
		Mentors:        m.db.Collection("mentors"),
		Registrations:  m.db.Collection("registeredStudents"),
		Cart:           m.db.Collection("cartItem"),
		Enrollments:    m.db.Collection("enrolledStudents"),
	}
}
