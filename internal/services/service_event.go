package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"alumni-directory/dto"
	"alumni-directory/internal/models"
	"alumni-directory/internal/repository"
)

type EventService struct {
	repos *repository.Repositories
	now   func() time.Time
}

func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	return s.repos.Events.All(ctx)
}

func (s *EventService) ByID(ctx context.Context, id string) (*models.Event, error) {
	return byHexID(ctx, s.repos.Events.Repo, id)
}

func (s *EventService) ByEventID(ctx context.Context, eventID string) (*models.Event, error) {
	return one(s.repos.Events.ByEventID(ctx, eventID))
}

// ByDate returns the events on the UTC calendar day of date.
func (s *EventService) ByDate(ctx context.Context, date string) ([]models.Event, error) {
	t, err := dto.ParseDate(date)
	if err != nil {
		return nil, asValidation(err)
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return s.repos.Events.Between(ctx, day, day.AddDate(0, 0, 1))
}

func (s *EventService) Create(ctx context.Context, in dto.EventInput) (*models.Event, error) {
	if err := dto.Validate(in); err != nil {
		return nil, asValidation(err)
	}
	e, err := in.Model()
	if err != nil {
		return nil, asValidation(err)
	}
	if e.EventID, err = s.repos.Events.NextID(ctx); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	e.ID = bson.NewObjectID()
	e.CreatedAt, e.UpdatedAt = now, now
	if err := s.repos.Events.Insert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) Update(ctx context.Context, id string, in dto.EventUpdateInput) (*models.Event, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, asValidation(err)
	}
	set, err := in.Set()
	if err != nil {
		return nil, asValidation(err)
	}
	set["Updated_at"] = s.now().UTC()

	e, err := s.repos.Events.Update(ctx, oid, set)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Kind: "event", ID: id}
	}
	return e, err
}

// Delete removes the event only; reservations and photos for it become orphans.
func (s *EventService) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}
	e, err := one(s.repos.Events.ByID(ctx, oid))
	if err != nil || e == nil {
		return false, err
	}
	ok, err := s.repos.Events.Delete(ctx, oid)
	if err != nil || !ok {
		return ok, err
	}

	filter := bson.M{"Event_id": e.EventID}
	flagOrphans(ctx, "reservation", s.repos.Reservations.Count, filter, e.EventID)
	flagOrphans(ctx, "photo", s.repos.Photos.Count, filter, e.EventID)
	return true, nil
}
