package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"alumni-directory/dto"
	"alumni-directory/internal/auth"
	"alumni-directory/internal/models"
	"alumni-directory/internal/repository"
)

type AuthPayload struct {
	Token  string         `json:"token"`
	Alumni *models.Alumni `json:"alumni"`
	Admin  *models.Admin  `json:"admin"`
}

type AuthService struct {
	repos  *repository.Repositories
	alumni *AlumniService
	tokens *auth.Manager
	now    func() time.Time
}

func (s *AuthService) LoginAlumni(ctx context.Context, email, password string) (*AuthPayload, error) {
	a, err := one(s.repos.Alumni.ByEmail(ctx, dto.NormalizeEmail(email)))
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, loginFailed("alumni", email, errPrincipalNotFound)
	}
	if !checkPassword(a.Password, password) {
		return nil, loginFailed("alumni", email, errCredentialMismatch)
	}

	token, err := s.tokens.IssueAlumni(a.ID.Hex(), a.AlumniID)
	if err != nil {
		return nil, err
	}
	return &AuthPayload{Token: token, Alumni: a}, nil
}

func (s *AuthService) LoginAdmin(ctx context.Context, username, password string) (*AuthPayload, error) {
	a, err := one(s.repos.Admins.ByUsername(ctx, username))
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, loginFailed("admin", username, errPrincipalNotFound)
	}
	if !checkPassword(a.Password, password) {
		return nil, loginFailed("admin", username, errCredentialMismatch)
	}

	now := s.now().UTC()
	if updated, err := s.repos.Admins.Update(ctx, a.ID, bson.M{"Last_login": now}); err == nil {
		a = updated
	} else {
		log.Printf("admin login %s: stamp Last_login: %v", a.AdminID, err)
	}

	token, err := s.tokens.IssueAdmin(a.ID.Hex(), a.AdminID)
	if err != nil {
		return nil, err
	}
	return &AuthPayload{Token: token, Admin: a}, nil
}

// RegisterAlumni creates the record and signs the new alumni in.
func (s *AuthService) RegisterAlumni(ctx context.Context, in dto.AlumniInput) (*AuthPayload, error) {
	existing, err := s.alumni.ByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, invalid("email already registered")
	}
	a, err := s.alumni.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.IssueAlumni(a.ID.Hex(), a.AlumniID)
	if err != nil {
		return nil, err
	}
	return &AuthPayload{Token: token, Alumni: a}, nil
}

func loginFailed(kind, principal string, reason error) error {
	log.Printf("%s login %q: %v", kind, principal, reason)
	return ErrInvalidCredentials
}
