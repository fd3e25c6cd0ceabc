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

type ReservationService struct {
	repos *repository.Repositories
	now   func() time.Time
}

func (s *ReservationService) List(ctx context.Context) ([]models.Reservation, error) {
	return s.repos.Reservations.All(ctx)
}

func (s *ReservationService) ByID(ctx context.Context, id string) (*models.Reservation, error) {
	return byHexID(ctx, s.repos.Reservations.Repo, id)
}

func (s *ReservationService) ByAlumni(ctx context.Context, alumniID string) ([]models.Reservation, error) {
	return s.repos.Reservations.ByAlumni(ctx, alumniID)
}

func (s *ReservationService) ByEvent(ctx context.Context, eventID string) ([]models.Reservation, error) {
	return s.repos.Reservations.ByEvent(ctx, eventID)
}

func (s *ReservationService) Create(ctx context.Context, in dto.ReservationInput) (*models.Reservation, error) {
	if err := dto.Validate(in); err != nil {
		return nil, asValidation(err)
	}
	r, err := in.Model()
	if err != nil {
		return nil, asValidation(err)
	}
	if r.ReservationID, err = s.repos.Reservations.NextID(ctx); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	r.ID = bson.NewObjectID()
	r.CreatedAt, r.UpdatedAt = now, now

	if err := s.repos.Reservations.Insert(ctx, r); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("%s already has a reservation for event %s", r.AlumniID, r.EventID)
		}
		return nil, err
	}
	return r, nil
}

func (s *ReservationService) Update(ctx context.Context, id string, in dto.ReservationUpdateInput) (*models.Reservation, error) {
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

	r, err := s.repos.Reservations.Update(ctx, oid, set)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, &NotFoundError{Kind: "reservation", ID: id}
	case errors.Is(err, repository.ErrDuplicate):
		return nil, invalid("a reservation for that alumni and event already exists")
	}
	return r, err
}

func (s *ReservationService) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}
	return s.repos.Reservations.Delete(ctx, oid)
}
