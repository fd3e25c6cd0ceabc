// Package auth issues and verifies session tokens and holds the access
// predicates shared by the GraphQL resolvers and the REST handlers.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TypeAlumni = "alumni"
	TypeAdmin  = "admin"
)

// Boundary errors. Callers never learn why a token or credential was refused.
var (
	ErrAuthRequired = errors.New("authentication required")
	ErrAccessDenied = errors.New("access denied")
)

type Claims struct {
	ID       string `json:"id"`
	AlumniID string `json:"Alumni_id,omitempty"`
	AdminID  string `json:"Admin_id,omitempty"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool  { return c != nil && c.Type == TypeAdmin }
func (c *Claims) IsAlumni() bool { return c != nil && c.Type == TypeAlumni }

// HumanID is the caller's readable identifier (A… or AD…).
func (c *Claims) HumanID() string {
	if c.IsAdmin() {
		return c.AdminID
	}
	return c.AlumniID
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *Manager) IssueAlumni(id, alumniID string) (string, error) {
	return m.issue(Claims{ID: id, AlumniID: alumniID, Type: TypeAlumni})
}

func (m *Manager) IssueAdmin(id, adminID string) (string, error) {
	return m.issue(Claims{ID: id, AdminID: adminID, Type: TypeAdmin})
}

func (m *Manager) issue(claims Claims) (string, error) {
	now := m.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify accepts a raw token or an "Authorization" header value. Any failure
// yields ok=false.
func (m *Manager) Verify(token string) (*Claims, bool) {
	token = strings.TrimSpace(token)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return nil, false
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, false
	}
	if claims.Type != TypeAlumni && claims.Type != TypeAdmin {
		return nil, false
	}
	return &claims, true
}

type claimsKey struct{}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

func FromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsKey{}).(*Claims)
	return c
}

func RequireAuth(ctx context.Context) (*Claims, error) {
	c := FromContext(ctx)
	if c == nil {
		return nil, ErrAuthRequired
	}
	return c, nil
}

func RequireAdmin(ctx context.Context) (*Claims, error) {
	c, err := RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if !c.IsAdmin() {
		return nil, ErrAccessDenied
	}
	return c, nil
}

// RequireOwnerOrAdmin passes admins and the alumni whose Alumni_id is ownerID.
func RequireOwnerOrAdmin(ctx context.Context, ownerID string) (*Claims, error) {
	c, err := RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if c.IsAdmin() || (c.IsAlumni() && c.AlumniID != "" && c.AlumniID == ownerID) {
		return c, nil
	}
	return nil, ErrAccessDenied
}
