package dto

import (
	"strings"
	"testing"
	"time"

	"alumni-directory/internal/models"
)

func TestDecodeAlumniInputValidation(t *testing.T) {
	var in AlumniInput
	err := Decode(map[string]any{"Name": "Ada", "Email": "not-an-email"}, &in)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"Graduation_year is required", "Email must be a valid email address", "Password is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}

	err = Decode(map[string]any{
		"Name": "Ada", "Graduation_year": 2020, "Email": "Ada@Example.com", "Password": "pw",
		"Employment_status": "Retired",
	}, &in)
	if err == nil || !strings.Contains(err.Error(), "Employment_status must be one of") {
		t.Errorf("expected enumeration error, got %v", err)
	}
}

func TestAlumniInputModel(t *testing.T) {
	var in AlumniInput
	err := Decode(map[string]any{
		"Name": "Ada", "Graduation_year": 2020, "Email": "Ada@Example.com", "Password": "pw",
		"Employment_history": []any{map[string]any{"Employer": "IBM", "Start_date": "2019-06-01"}},
	}, &in)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	m, err := in.Model()
	if err != nil {
		t.Fatalf("Model failed: %v", err)
	}
	if m.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", m.Email)
	}
	if m.Password != "" {
		t.Error("Model must not copy the plaintext password")
	}
	want := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := m.EmploymentHistory[0].StartDate; got == nil || !got.Equal(want) {
		t.Errorf("Start_date = %v, want %v", got, want)
	}
}

func TestAlumniUpdateSetOnlySuppliedFields(t *testing.T) {
	var in AlumniUpdateInput
	if err := Decode(map[string]any{"Employer": "Meta", "Password": "new"}, &in); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	set, err := in.Set()
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if len(set) != 1 || set["Employer"] != "Meta" {
		t.Errorf("unexpected $set: %v", set)
	}
}

func TestReservationDefaults(t *testing.T) {
	var in ReservationInput
	if err := Decode(map[string]any{"Alumni_id": "A1001", "Event_id": "E1001"}, &in); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	r, err := in.Model()
	if err != nil {
		t.Fatalf("Model failed: %v", err)
	}
	if r.NumberOfAttendees != 1 || r.PaymentStatus != models.PaymentPending {
		t.Errorf("defaults not applied: %+v", r)
	}

	err = Decode(map[string]any{"Alumni_id": "A1001", "Event_id": "E1001", "Payment_status": "Free"}, &in)
	if err == nil {
		t.Error("expected Payment_status enumeration error")
	}
}

func TestAdminRoleDefaultAndEnum(t *testing.T) {
	var in AdminInput
	if err := Decode(map[string]any{"Username": "root", "Password": "pw"}, &in); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if in.Model().Role != models.RoleAdmin {
		t.Errorf("Role default = %q", in.Model().Role)
	}
	if err := Decode(map[string]any{"Username": "root", "Password": "pw", "Role": "Super Admin"}, &in); err != nil {
		t.Errorf("Super Admin should be accepted: %v", err)
	}
	if err := Decode(map[string]any{"Username": "root", "Password": "pw", "Role": "Owner"}, &in); err == nil {
		t.Error("expected role enumeration error")
	}
}

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2025-12-25")
	if err != nil || !day.Equal(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("calendar date: %v %v", day, err)
	}
	ts, err := ParseDate("2025-12-25T18:30:00+02:00")
	if err != nil || ts.Hour() != 16 || ts.Location() != time.UTC {
		t.Errorf("RFC 3339: %v %v", ts, err)
	}
	if _, err := ParseDate("25/12/2025"); err == nil {
		t.Error("expected error for unsupported layout")
	}
}
