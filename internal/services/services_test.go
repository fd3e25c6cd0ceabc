package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"alumni-directory/bootstrap"
	"alumni-directory/dto"
	"alumni-directory/internal/auth"
	"alumni-directory/internal/models"
	"alumni-directory/internal/photostore"
	"alumni-directory/internal/repository"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type fixture struct {
	svc    *Services
	files  *photostore.MemoryStore
	tokens *auth.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	if err := bootstrap.EnsureIndexes(context.Background(), store); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}
	files := photostore.NewMemoryStore()
	tokens := auth.NewManager("test-secret", 24*time.Hour)
	return &fixture{
		svc:    New(repository.New(store), files, photostore.NewPolicy(1<<20), tokens),
		files:  files,
		tokens: tokens,
	}
}

func alumniInput(name, email string) dto.AlumniInput {
	return dto.AlumniInput{Name: name, GraduationYear: 2020, Email: email, Password: "password123", Employer: "Google"}
}

func TestCreateAlumniAssignsSequentialIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Alumni.Create(ctx, alumniInput("Ada", "Ada@Example.com"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b, _ := f.svc.Alumni.Create(ctx, alumniInput("Bob", "bob@example.com"))

	if a.AlumniID != "A1001" || b.AlumniID != "A1002" {
		t.Errorf("ids = %s, %s", a.AlumniID, b.AlumniID)
	}
	if a.Email != "ada@example.com" {
		t.Errorf("email not lower-cased: %q", a.Email)
	}
	if a.Password == "password123" || !checkPassword(a.Password, "password123") {
		t.Error("password must be stored as a bcrypt hash")
	}
	if a.CreatedAt.IsZero() || a.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestCreateAlumniDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Alumni.Create(ctx, alumniInput("Ada", "ada@example.com"))
	_, err := f.svc.Alumni.Create(ctx, alumniInput("Ada Two", "ADA@example.com"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateAlumniRehashesOnlyWhenPresent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, _ := f.svc.Alumni.Create(ctx, alumniInput("Ada", "ada@example.com"))

	employer := "Meta"
	updated, err := f.svc.Alumni.Update(ctx, a.ID.Hex(), dto.AlumniUpdateInput{Employer: &employer})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Password != a.Password || updated.Employer != "Meta" || updated.Name != "Ada" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	pw := "changed"
	updated, _ = f.svc.Alumni.Update(ctx, a.ID.Hex(), dto.AlumniUpdateInput{Password: &pw})
	if !checkPassword(updated.Password, "changed") {
		t.Error("new password not hashed into place")
	}

	var nf *NotFoundError
	if _, err := f.svc.Alumni.Update(ctx, "665f1c2e9b1e8a0012345678", dto.AlumniUpdateInput{Employer: &employer}); !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
	var verr *ValidationError
	if _, err := f.svc.Alumni.Update(ctx, "nope", dto.AlumniUpdateInput{}); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for bad id, got %v", err)
	}
}

func TestLoginIsGeneric(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.svc.Alumni.Create(ctx, alumniInput("Ada", "ada@example.com"))

	payload, err := f.svc.Auth.LoginAlumni(ctx, "ADA@example.com", "password123")
	if err != nil {
		t.Fatalf("LoginAlumni failed: %v", err)
	}
	claims, ok := f.tokens.Verify(payload.Token)
	if !ok || claims.AlumniID != "A1001" || claims.Type != auth.TypeAlumni {
		t.Errorf("unexpected token claims: %+v", claims)
	}

	_, wrongPassword := f.svc.Auth.LoginAlumni(ctx, "ada@example.com", "nope")
	_, unknown := f.svc.Auth.LoginAlumni(ctx, "ghost@example.com", "password123")
	if !errors.Is(wrongPassword, ErrInvalidCredentials) || !errors.Is(unknown, ErrInvalidCredentials) {
		t.Errorf("failures must be indistinguishable: %v / %v", wrongPassword, unknown)
	}
	if wrongPassword.Error() != unknown.Error() {
		t.Error("failure messages differ")
	}
}

func TestLoginAdminStampsLastLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, err := f.svc.Admins.Create(ctx, dto.AdminInput{Username: "root", Password: "pw"})
	if err != nil {
		t.Fatalf("Create admin failed: %v", err)
	}
	if admin.AdminID != "AD1001" || admin.Role != models.RoleAdmin {
		t.Errorf("unexpected admin: %+v", admin)
	}

	payload, err := f.svc.Auth.LoginAdmin(ctx, "root", "pw")
	if err != nil {
		t.Fatalf("LoginAdmin failed: %v", err)
	}
	if payload.Admin.LastLogin == nil {
		t.Error("Last_login not stamped")
	}
	if _, err := f.svc.Auth.LoginAdmin(ctx, "root", "bad"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterAlumni(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payload, err := f.svc.Auth.RegisterAlumni(ctx, alumniInput("Ada", "ada@example.com"))
	if err != nil {
		t.Fatalf("RegisterAlumni failed: %v", err)
	}
	if payload.Token == "" || payload.Alumni.AlumniID != "A1001" {
		t.Errorf("unexpected payload: %+v", payload)
	}
	var verr *ValidationError
	if _, err := f.svc.Auth.RegisterAlumni(ctx, alumniInput("Ada", "ada@example.com")); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestReservationUniquePerAlumniEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, err := f.svc.Reservations.Create(ctx, dto.ReservationInput{AlumniID: "A1001", EventID: "E1001"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if r.ReservationID != "R1001" || r.NumberOfAttendees != 1 || r.PaymentStatus != models.PaymentPending {
		t.Errorf("unexpected reservation: %+v", r)
	}
	var verr *ValidationError
	if _, err := f.svc.Reservations.Create(ctx, dto.ReservationInput{AlumniID: "A1001", EventID: "E1001"}); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestEventsByDateMatchesWholeDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, date := range []string{"2025-12-25", "2025-12-25T20:00:00Z", "2025-12-26"} {
		if _, err := f.svc.Events.Create(ctx, dto.EventInput{Name: "Gala", Date: date, OrganizerID: "A1001"}); err != nil {
			t.Fatalf("Create %s failed: %v", date, err)
		}
	}
	events, err := f.svc.Events.ByDate(ctx, "2025-12-25")
	if err != nil {
		t.Fatalf("ByDate failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 events on 2025-12-25, got %d", len(events))
	}
}

func TestDeleteAlumniLeavesOrphans(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, _ := f.svc.Alumni.Create(ctx, alumniInput("Ada", "ada@example.com"))
	f.svc.Reservations.Create(ctx, dto.ReservationInput{AlumniID: a.AlumniID, EventID: "E1001"})

	ok, err := f.svc.Alumni.Delete(ctx, a.ID.Hex())
	if err != nil || !ok {
		t.Fatalf("Delete failed: ok=%v err=%v", ok, err)
	}
	left, _ := f.svc.Reservations.ByAlumni(ctx, a.AlumniID)
	if len(left) != 1 {
		t.Errorf("reservations must not cascade, got %d", len(left))
	}
	if ok, _ := f.svc.Alumni.Delete(ctx, a.ID.Hex()); ok {
		t.Error("second delete should report false")
	}
}

func TestPhotoUploadAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Photos.Upload(ctx, UploadRequest{
		AlumniID: "A1001", Tags: []string{"gala"}, FileName: "Gala Night.png",
		DeclaredType: "image/png", Size: int64(len(pngBytes)), Body: bytes.NewReader(pngBytes),
	})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if p.PhotoID != "P1001" || p.MimeType != "image/png" || p.FileSize != int64(len(pngBytes)) {
		t.Errorf("unexpected photo: %+v", p)
	}
	if f.files.Len() != 1 {
		t.Fatalf("expected 1 stored file, got %d", f.files.Len())
	}

	if err := f.svc.Photos.DeleteByFileID(ctx, p.FileID); err != nil {
		t.Fatalf("DeleteByFileID failed: %v", err)
	}
	if f.files.Len() != 0 {
		t.Error("binary not removed")
	}
	if got, _ := f.svc.Photos.ByFileID(ctx, p.FileID); got != nil {
		t.Error("metadata not removed")
	}
	var nf *NotFoundError
	if err := f.svc.Photos.DeleteByFileID(ctx, p.FileID); !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestPhotoUploadRejectsNonImage(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Photos.Upload(context.Background(), UploadRequest{
		AlumniID: "A1001", FileName: "doc.pdf", DeclaredType: "application/pdf",
		Body: bytes.NewReader([]byte("%PDF-1.4")),
	})
	if !errors.Is(err, photostore.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
	if f.files.Len() != 0 {
		t.Error("rejected upload must not be stored")
	}
}
