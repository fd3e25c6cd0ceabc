package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"alumni-directory/internal/metrics"
	"alumni-directory/internal/models"
)

// Repo holds the operations every entity repository shares.
type Repo[T any] struct {
	coll    Collection
	seq     Sequencer
	counter string
}

func newRepo[T any](store Store, collection, counter string) *Repo[T] {
	return &Repo[T]{coll: store.Collection(collection), seq: store, counter: counter}
}

func (r *Repo[T]) All(ctx context.Context) ([]T, error) {
	return r.Where(ctx, bson.M{})
}

func (r *Repo[T]) Where(ctx context.Context, filter bson.M) ([]T, error) {
	out := []T{}
	if err := r.coll.Find(ctx, filter, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo[T]) One(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	if err := r.coll.FindOne(ctx, filter, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *Repo[T]) ByID(ctx context.Context, id bson.ObjectID) (*T, error) {
	return r.One(ctx, bson.M{"_id": id})
}

// NextID reserves the next human-readable identifier, e.g. "A1001".
func (r *Repo[T]) NextID(ctx context.Context) (string, error) {
	n, err := r.seq.Next(ctx, r.counter)
	if err != nil {
		return "", err
	}
	metrics.SequenceAllocations.WithLabelValues(r.counter).Inc()
	return fmt.Sprintf("%s%d", models.IDPrefixes[r.counter], n), nil
}

func (r *Repo[T]) Insert(ctx context.Context, doc *T) error {
	return r.coll.InsertOne(ctx, doc)
}

func (r *Repo[T]) Update(ctx context.Context, id bson.ObjectID, set bson.M) (*T, error) {
	var doc T
	if err := r.coll.UpdateByID(ctx, id, set, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *Repo[T]) Delete(ctx context.Context, id bson.ObjectID) (bool, error) {
	return r.coll.DeleteByID(ctx, id)
}

func (r *Repo[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.coll.Count(ctx, filter)
}

func (r *Repo[T]) Reset(ctx context.Context) error {
	return r.coll.DeleteAll(ctx)
}

type AlumniRepository struct{ *Repo[models.Alumni] }

func (r AlumniRepository) ByAlumniID(ctx context.Context, alumniID string) (*models.Alumni, error) {
	return r.One(ctx, bson.M{"Alumni_id": alumniID})
}

func (r AlumniRepository) ByEmail(ctx context.Context, email string) (*models.Alumni, error) {
	return r.One(ctx, bson.M{"Email": email})
}

func (r AlumniRepository) ByEmployer(ctx context.Context, employer string) ([]models.Alumni, error) {
	return r.Where(ctx, bson.M{"Employer": employer})
}

type AdminRepository struct{ *Repo[models.Admin] }

func (r AdminRepository) ByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return r.One(ctx, bson.M{"Username": username})
}

type EventRepository struct{ *Repo[models.Event] }

func (r EventRepository) ByEventID(ctx context.Context, eventID string) (*models.Event, error) {
	return r.One(ctx, bson.M{"Event_id": eventID})
}

// Between returns events whose Date falls in [from, to).
func (r EventRepository) Between(ctx context.Context, from, to any) ([]models.Event, error) {
	return r.Where(ctx, bson.M{"Date": bson.M{"$gte": from, "$lt": to}})
}

func (r EventRepository) ByOrganizer(ctx context.Context, alumniID string) ([]models.Event, error) {
	return r.Where(ctx, bson.M{"Organizer_id": alumniID})
}

type ReservationRepository struct{ *Repo[models.Reservation] }

func (r ReservationRepository) ByAlumni(ctx context.Context, alumniID string) ([]models.Reservation, error) {
	return r.Where(ctx, bson.M{"Alumni_id": alumniID})
}

func (r ReservationRepository) ByEvent(ctx context.Context, eventID string) ([]models.Reservation, error) {
	return r.Where(ctx, bson.M{"Event_id": eventID})
}

type PhotoRepository struct{ *Repo[models.Photo] }

func (r PhotoRepository) ByFileID(ctx context.Context, fileID bson.ObjectID) (*models.Photo, error) {
	return r.One(ctx, bson.M{"File_id": fileID})
}

func (r PhotoRepository) ByEvent(ctx context.Context, eventID string) ([]models.Photo, error) {
	return r.Where(ctx, bson.M{"Event_id": eventID})
}

func (r PhotoRepository) ByAlumni(ctx context.Context, alumniID string) ([]models.Photo, error) {
	return r.Where(ctx, bson.M{"Alumni_id": alumniID})
}

// ByTags returns photos carrying at least one of tags.
func (r PhotoRepository) ByTags(ctx context.Context, tags []string) ([]models.Photo, error) {
	return r.Where(ctx, bson.M{"Tags": bson.M{"$in": tags}})
}

// Repositories bundles one repository per entity over a shared Store.
type Repositories struct {
	Alumni       AlumniRepository
	Admins       AdminRepository
	Events       EventRepository
	Reservations ReservationRepository
	Photos       PhotoRepository
}

func New(store Store) *Repositories {
	return &Repositories{
		Alumni:       AlumniRepository{newRepo[models.Alumni](store, AlumniCollection, models.CounterAlumni)},
		Admins:       AdminRepository{newRepo[models.Admin](store, AdminCollection, models.CounterAdmin)},
		Events:       EventRepository{newRepo[models.Event](store, EventCollection, models.CounterEvent)},
		Reservations: ReservationRepository{newRepo[models.Reservation](store, ReservationCollection, models.CounterReservation)},
		Photos:       PhotoRepository{newRepo[models.Photo](store, PhotoCollection, models.CounterPhoto)},
	}
}
