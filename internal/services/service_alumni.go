package services

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"alumni-directory/dto"
	"alumni-directory/internal/metrics"
	"alumni-directory/internal/models"
	"alumni-directory/internal/repository"
)

type AlumniService struct {
	repos *repository.Repositories
	now   func() time.Time
}

func (s *AlumniService) List(ctx context.Context) ([]models.Alumni, error) {
	return s.repos.Alumni.All(ctx)
}

func (s *AlumniService) ByID(ctx context.Context, id string) (*models.Alumni, error) {
	return byHexID(ctx, s.repos.Alumni.Repo, id)
}

func (s *AlumniService) ByAlumniID(ctx context.Context, alumniID string) (*models.Alumni, error) {
	return one(s.repos.Alumni.ByAlumniID(ctx, alumniID))
}

func (s *AlumniService) ByEmail(ctx context.Context, email string) (*models.Alumni, error) {
	return one(s.repos.Alumni.ByEmail(ctx, dto.NormalizeEmail(email)))
}

func (s *AlumniService) ByEmployer(ctx context.Context, employer string) ([]models.Alumni, error) {
	return s.repos.Alumni.ByEmployer(ctx, employer)
}

func (s *AlumniService) Create(ctx context.Context, in dto.AlumniInput) (*models.Alumni, error) {
	if err := dto.Validate(in); err != nil {
		return nil, asValidation(err)
	}
	a, err := in.Model()
	if err != nil {
		return nil, asValidation(err)
	}
	if a.Password, err = hashPassword(in.Password); err != nil {
		return nil, err
	}
	if a.AlumniID, err = s.repos.Alumni.NextID(ctx); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	a.ID = bson.NewObjectID()
	a.CreatedAt, a.UpdatedAt = now, now

	if err := s.repos.Alumni.Insert(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("email %s is already registered", a.Email)
		}
		return nil, err
	}
	return a, nil
}

func (s *AlumniService) Update(ctx context.Context, id string, in dto.AlumniUpdateInput) (*models.Alumni, error) {
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
	if in.Password != nil && *in.Password != "" {
		if set["Password"], err = hashPassword(*in.Password); err != nil {
			return nil, err
		}
	}
	set["Updated_at"] = s.now().UTC()

	a, err := s.repos.Alumni.Update(ctx, oid, set)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, &NotFoundError{Kind: "alumni", ID: id}
	case errors.Is(err, repository.ErrDuplicate):
		return nil, invalid("email is already registered")
	}
	return a, err
}

// Delete removes the alumni record only. Reservations, photos and organized
// events that point at it are left in place and counted as orphans.
func (s *AlumniService) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}
	a, err := one(s.repos.Alumni.ByID(ctx, oid))
	if err != nil || a == nil {
		return false, err
	}
	ok, err := s.repos.Alumni.Delete(ctx, oid)
	if err != nil || !ok {
		return ok, err
	}

	filter := bson.M{"Alumni_id": a.AlumniID}
	flagOrphans(ctx, "reservation", s.repos.Reservations.Count, filter, a.AlumniID)
	flagOrphans(ctx, "photo", s.repos.Photos.Count, filter, a.AlumniID)
	flagOrphans(ctx, "event", s.repos.Events.Count, bson.M{"Organizer_id": a.AlumniID}, a.AlumniID)
	return true, nil
}

type countFunc func(ctx context.Context, filter bson.M) (int64, error)

// flagOrphans counts records still referencing owner after a delete.
func flagOrphans(ctx context.Context, kind string, count countFunc, filter bson.M, owner string) {
	n, err := count(ctx, filter)
	if err != nil {
		log.Printf("delete %s: count %s references: %v", owner, kind, err)
		return
	}
	if n == 0 {
		return
	}
	metrics.OrphanedReferences.WithLabelValues(kind).Add(float64(n))
	log.Printf("delete %s: %d %s record(s) still reference it", owner, n, kind)
}
