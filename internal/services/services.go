// Package services holds the business rules on top of the repositories.
package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"alumni-directory/internal/auth"
	"alumni-directory/internal/photostore"
	"alumni-directory/internal/repository"
)

type Services struct {
	Alumni       *AlumniService
	Admins       *AdminService
	Events       *EventService
	Reservations *ReservationService
	Photos       *PhotoService
	Auth         *AuthService
}

func New(repos *repository.Repositories, files photostore.Store, policy photostore.Policy, tokens *auth.Manager) *Services {
	clock := time.Now
	s := &Services{
		Alumni:       &AlumniService{repos: repos, now: clock},
		Admins:       &AdminService{repos: repos, now: clock},
		Events:       &EventService{repos: repos, now: clock},
		Reservations: &ReservationService{repos: repos, now: clock},
		Photos:       &PhotoService{repos: repos, files: files, policy: policy, now: clock},
	}
	s.Auth = &AuthService{repos: repos, alumni: s.Alumni, tokens: tokens, now: clock}
	return s
}

func hashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(b), err
}

func checkPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// one maps a repository miss to (nil, nil) for lookups that may come back empty.
func one[T any](doc *T, err error) (*T, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return doc, err
}

func byHexID[T any](ctx context.Context, repo *repository.Repo[T], id string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return one(repo.ByID(ctx, oid))
}
