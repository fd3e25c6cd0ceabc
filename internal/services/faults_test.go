package services

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"alumni-directory/bootstrap"
	"alumni-directory/dto"
	"alumni-directory/internal/auth"
	"alumni-directory/internal/photostore"
	"alumni-directory/internal/repository"
)

var errInjected = errors.New("injected failure")

// failingFiles is a memory photo store whose Delete can be made to fail.
type failingFiles struct {
	*photostore.MemoryStore
	failDelete bool
}

func (f *failingFiles) Delete(ctx context.Context, id bson.ObjectID) error {
	if f.failDelete {
		return errInjected
	}
	return f.MemoryStore.Delete(ctx, id)
}

// failingCollection fails the operations whose flag is set.
type failingCollection struct {
	repository.Collection
	failInsert, failDelete, failCount bool
}

func (c *failingCollection) InsertOne(ctx context.Context, doc any) error {
	if c.failInsert {
		return errInjected
	}
	return c.Collection.InsertOne(ctx, doc)
}

func (c *failingCollection) DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error) {
	if c.failDelete {
		return false, errInjected
	}
	return c.Collection.DeleteByID(ctx, id)
}

func (c *failingCollection) Count(ctx context.Context, filter bson.M) (int64, error) {
	if c.failCount {
		return 0, errInjected
	}
	return c.Collection.Count(ctx, filter)
}

// failingStore hands out one failingCollection per name over a memory store.
type failingStore struct {
	repository.Store
	colls map[string]*failingCollection
}

func newFailingStore(t *testing.T) *failingStore {
	t.Helper()
	mem := repository.NewMemoryStore()
	if err := bootstrap.EnsureIndexes(context.Background(), mem); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}
	return &failingStore{Store: mem, colls: make(map[string]*failingCollection)}
}

func (s *failingStore) Collection(name string) repository.Collection {
	return s.coll(name)
}

func (s *failingStore) coll(name string) *failingCollection {
	c, ok := s.colls[name]
	if !ok {
		c = &failingCollection{Collection: s.Store.Collection(name)}
		s.colls[name] = c
	}
	return c
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func newFailingFixture(t *testing.T) (*Services, *failingStore, *failingFiles) {
	t.Helper()
	store := newFailingStore(t)
	files := &failingFiles{MemoryStore: photostore.NewMemoryStore()}
	tokens := auth.NewManager("test-secret", 24*time.Hour)
	return New(repository.New(store), files, photostore.NewPolicy(1<<20), tokens), store, files
}

func uploadPNG(t *testing.T, svc *Services) bson.ObjectID {
	t.Helper()
	p, err := svc.Photos.Upload(context.Background(), UploadRequest{
		AlumniID: "A1001", FileName: "gala.png", DeclaredType: "image/png",
		Size: int64(len(pngBytes)), Body: bytes.NewReader(pngBytes),
	})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	return p.FileID
}

func TestDeleteByFileIDSurfacesBinaryFailure(t *testing.T) {
	svc, _, files := newFailingFixture(t)
	ctx := context.Background()
	fileID := uploadPNG(t, svc)

	files.failDelete = true
	var storage *StorageError
	if err := svc.Photos.DeleteByFileID(ctx, fileID); !errors.As(err, &storage) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if files.Len() != 1 {
		t.Error("binary should still be stored")
	}
	if p, _ := svc.Photos.ByFileID(ctx, fileID); p == nil {
		t.Error("metadata must stay when the binary delete fails")
	}
}

func TestDeleteByFileIDSurfacesMetadataFailure(t *testing.T) {
	svc, store, files := newFailingFixture(t)
	ctx := context.Background()
	fileID := uploadPNG(t, svc)

	store.coll(repository.PhotoCollection).failDelete = true
	if err := svc.Photos.DeleteByFileID(ctx, fileID); !errors.Is(err, errInjected) {
		t.Fatalf("expected the metadata failure, got %v", err)
	}
	if files.Len() != 0 {
		t.Error("binary should be gone")
	}
	if p, _ := svc.Photos.ByFileID(ctx, fileID); p == nil {
		t.Error("metadata record should be left in place")
	}
}

func TestUploadLogsFailedCleanup(t *testing.T) {
	svc, store, files := newFailingFixture(t)
	logs := captureLog(t)

	store.coll(repository.PhotoCollection).failInsert = true
	files.failDelete = true
	_, err := svc.Photos.Upload(context.Background(), UploadRequest{
		AlumniID: "A1001", FileName: "gala.png", DeclaredType: "image/png",
		Size: int64(len(pngBytes)), Body: bytes.NewReader(pngBytes),
	})
	if !errors.Is(err, errInjected) {
		t.Fatalf("expected the insert failure, got %v", err)
	}
	if files.Len() != 1 {
		t.Errorf("expected the leftover binary, got %d files", files.Len())
	}
	if !strings.Contains(logs.String(), "remove stored binary") {
		t.Errorf("cleanup failure not logged: %q", logs.String())
	}
}

func TestDeleteLogsFailedOrphanCount(t *testing.T) {
	svc, store, _ := newFailingFixture(t)
	ctx := context.Background()
	logs := captureLog(t)

	a, err := svc.Alumni.Create(ctx, alumniInput("Ada", "ada@example.com"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	e, err := svc.Events.Create(ctx, dto.EventInput{Name: "Gala", Date: "2025-12-25", OrganizerID: a.AlumniID})
	if err != nil {
		t.Fatalf("Create event failed: %v", err)
	}
	store.coll(repository.ReservationCollection).failCount = true

	if ok, err := svc.Events.Delete(ctx, e.ID.Hex()); err != nil || !ok {
		t.Fatalf("Delete event = %v, %v", ok, err)
	}
	if ok, err := svc.Alumni.Delete(ctx, a.ID.Hex()); err != nil || !ok {
		t.Fatalf("Delete alumni = %v, %v", ok, err)
	}
	out := logs.String()
	for _, owner := range []string{e.EventID, a.AlumniID} {
		if !strings.Contains(out, "delete "+owner+": count reservation references") {
			t.Errorf("count failure for %s not logged: %q", owner, out)
		}
	}
}
