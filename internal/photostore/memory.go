package photostore

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryStore keeps binaries in process. Used by tests and -memory runs.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[bson.ObjectID]memoryFile
}

type memoryFile struct {
	meta File
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[bson.ObjectID]memoryFile)}
}

func (s *MemoryStore) Upload(_ context.Context, name, contentType string, r io.Reader) (File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return File{}, err
	}
	f := File{
		ID:          bson.NewObjectID(),
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		UploadDate:  time.Now().UTC(),
	}
	s.mu.Lock()
	s.files[f.ID] = memoryFile{meta: f, data: data}
	s.mu.Unlock()
	return f, nil
}

func (s *MemoryStore) Open(_ context.Context, id bson.ObjectID) (io.ReadCloser, File, error) {
	s.mu.RLock()
	f, ok := s.files[id]
	s.mu.RUnlock()
	if !ok {
		return nil, File{}, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(f.data)), f.meta, nil
}

func (s *MemoryStore) Delete(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[id]; !ok {
		return ErrNotFound
	}
	delete(s.files, id)
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
