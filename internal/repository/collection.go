package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Collection is the subset of document-store behaviour the repositories use.
// Filters support plain equality (array fields match on membership) and the
// $in, $ne, $gte, $lt operators.
type Collection interface {
	Find(ctx context.Context, filter bson.M, results any) error
	FindOne(ctx context.Context, filter bson.M, result any) error
	InsertOne(ctx context.Context, doc any) error
	// UpdateByID applies set as a $set and decodes the updated document into result.
	UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M, result any) error
	DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	EnsureIndex(ctx context.Context, unique bool, fields ...string) error
	DeleteAll(ctx context.Context) error
}

// Sequencer hands out per-name counter values with an atomic increment-and-fetch.
type Sequencer interface {
	Next(ctx context.Context, name string) (int64, error)
}

// Store is a database: named collections plus the counters collection.
type Store interface {
	Sequencer
	Collection(name string) Collection
}

// Collection names.
const (
	AlumniCollection      = "alumni"
	AdminCollection       = "admins"
	EventCollection       = "events"
	ReservationCollection = "reservations"
	PhotoCollection       = "photos"
	CounterCollection     = "counters"
)
