package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"alumni-directory/internal/models"
)

type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) Collection(name string) Collection {
	return &mongoCollection{coll: s.db.Collection(name)}
}

// Next increments the named counter in a single server-side operation.
// A missing counter is created at models.CounterStart before the increment,
// so the first value handed out is CounterStart+1.
func (s *MongoStore) Next(ctx context.Context, name string) (int64, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "seq", Value: bson.D{
				{Key: "$add", Value: bson.A{
					bson.D{{Key: "$ifNull", Value: bson.A{"$seq", models.CounterStart}}},
					1,
				}},
			}},
		}}},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.Counter
	err := s.db.Collection(CounterCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, update, opts).
		Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next %s sequence: %w", name, err)
	}
	return counter.Seq, nil
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (m *mongoCollection) Find(ctx context.Context, filter bson.M, results any) error {
	cursor, err := m.coll.Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, results)
}

func (m *mongoCollection) FindOne(ctx context.Context, filter bson.M, result any) error {
	err := m.coll.FindOne(ctx, filter).Decode(result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (m *mongoCollection) InsertOne(ctx context.Context, doc any) error {
	_, err := m.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (m *mongoCollection) UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M, result any) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := m.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(result)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	}
	return err
}

func (m *mongoCollection) DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error) {
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (m *mongoCollection) Count(ctx context.Context, filter bson.M) (int64, error) {
	return m.coll.CountDocuments(ctx, filter)
}

func (m *mongoCollection) EnsureIndex(ctx context.Context, unique bool, fields ...string) error {
	keys := bson.D{}
	for _, f := range fields {
		keys = append(keys, bson.E{Key: f, Value: 1})
	}
	opts := options.Index()
	if unique {
		opts.SetUnique(true)
	}
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts})
	return err
}

func (m *mongoCollection) DeleteAll(ctx context.Context) error {
	_, err := m.coll.DeleteMany(ctx, bson.M{})
	return err
}
