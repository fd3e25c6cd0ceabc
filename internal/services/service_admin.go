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

type AdminService struct {
	repos *repository.Repositories
	now   func() time.Time
}

func (s *AdminService) List(ctx context.Context) ([]models.Admin, error) {
	return s.repos.Admins.All(ctx)
}

func (s *AdminService) ByID(ctx context.Context, id string) (*models.Admin, error) {
	return byHexID(ctx, s.repos.Admins.Repo, id)
}

func (s *AdminService) Create(ctx context.Context, in dto.AdminInput) (*models.Admin, error) {
	if err := dto.Validate(in); err != nil {
		return nil, asValidation(err)
	}
	a := in.Model()
	var err error
	if a.Password, err = hashPassword(in.Password); err != nil {
		return nil, err
	}
	if a.AdminID, err = s.repos.Admins.NextID(ctx); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	a.ID = bson.NewObjectID()
	a.CreatedAt, a.UpdatedAt = now, now

	if err := s.repos.Admins.Insert(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("username %s is already taken", a.Username)
		}
		return nil, err
	}
	return a, nil
}

func (s *AdminService) Update(ctx context.Context, id string, in dto.AdminUpdateInput) (*models.Admin, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, asValidation(err)
	}
	set := in.Set()
	if in.Password != nil && *in.Password != "" {
		if set["Password"], err = hashPassword(*in.Password); err != nil {
			return nil, err
		}
	}
	set["Updated_at"] = s.now().UTC()

	a, err := s.repos.Admins.Update(ctx, oid, set)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, &NotFoundError{Kind: "admin", ID: id}
	case errors.Is(err, repository.ErrDuplicate):
		return nil, invalid("username is already taken")
	}
	return a, err
}

func (s *AdminService) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}
	return s.repos.Admins.Delete(ctx, oid)
}
