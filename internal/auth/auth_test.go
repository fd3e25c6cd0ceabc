package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("secret", 24*time.Hour)
	token, err := m.IssueAlumni("665f1c2e9b1e8a0012345678", "A1001")
	if err != nil {
		t.Fatalf("IssueAlumni failed: %v", err)
	}

	for _, raw := range []string{token, "Bearer " + token, "bearer " + token} {
		c, ok := m.Verify(raw)
		if !ok {
			t.Fatalf("Verify(%q) rejected a valid token", raw[:10])
		}
		if c.AlumniID != "A1001" || c.Type != TypeAlumni || c.ID != "665f1c2e9b1e8a0012345678" {
			t.Errorf("unexpected claims: %+v", c)
		}
	}
}

func TestVerifyRejects(t *testing.T) {
	m := NewManager("secret", 24*time.Hour)
	good, _ := m.IssueAdmin("id", "AD1001")

	expired := NewManager("secret", 24*time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	stale, _ := expired.IssueAdmin("id", "AD1001")

	other, _ := NewManager("other", time.Hour).IssueAdmin("id", "AD1001")

	parts := strings.Split(good, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	cases := map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"expired":      stale,
		"wrong secret": other,
		"tampered":     tampered,
	}
	for name, token := range cases {
		if c, ok := m.Verify(token); ok || c != nil {
			t.Errorf("%s: expected rejection, got %+v", name, c)
		}
	}
}

func TestPredicates(t *testing.T) {
	alumni := &Claims{ID: "1", AlumniID: "A1001", Type: TypeAlumni}
	admin := &Claims{ID: "2", AdminID: "AD1001", Type: TypeAdmin}
	anon := context.Background()
	asAlumni := WithClaims(anon, alumni)
	asAdmin := WithClaims(anon, admin)

	if _, err := RequireAuth(anon); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("RequireAuth(anon) = %v", err)
	}
	if _, err := RequireAdmin(asAlumni); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("RequireAdmin(alumni) = %v", err)
	}
	if _, err := RequireAdmin(asAdmin); err != nil {
		t.Errorf("RequireAdmin(admin) = %v", err)
	}
	if _, err := RequireOwnerOrAdmin(asAlumni, "A1001"); err != nil {
		t.Errorf("owner should pass: %v", err)
	}
	if _, err := RequireOwnerOrAdmin(asAlumni, "A1002"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("non-owner should be denied: %v", err)
	}
	if _, err := RequireOwnerOrAdmin(asAdmin, "A1002"); err != nil {
		t.Errorf("admin should pass: %v", err)
	}
	if _, err := RequireOwnerOrAdmin(anon, "A1001"); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("anon owner check = %v", err)
	}
}
