package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"alumni-directory/dto"
	"alumni-directory/internal/models"
	"alumni-directory/internal/photostore"
	"alumni-directory/internal/repository"
)

// StorageError marks a failure of the binary store, as opposed to the
// metadata collection.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("photo storage %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

type PhotoService struct {
	repos  *repository.Repositories
	files  photostore.Store
	policy photostore.Policy
	now    func() time.Time
}

func (s *PhotoService) List(ctx context.Context) ([]models.Photo, error) {
	return s.repos.Photos.All(ctx)
}

func (s *PhotoService) ByID(ctx context.Context, id string) (*models.Photo, error) {
	return byHexID(ctx, s.repos.Photos.Repo, id)
}

func (s *PhotoService) ByFileID(ctx context.Context, fileID bson.ObjectID) (*models.Photo, error) {
	return one(s.repos.Photos.ByFileID(ctx, fileID))
}

func (s *PhotoService) ByEvent(ctx context.Context, eventID string) ([]models.Photo, error) {
	return s.repos.Photos.ByEvent(ctx, eventID)
}

func (s *PhotoService) ByAlumni(ctx context.Context, alumniID string) ([]models.Photo, error) {
	return s.repos.Photos.ByAlumni(ctx, alumniID)
}

func (s *PhotoService) ByTags(ctx context.Context, tags []string) ([]models.Photo, error) {
	return s.repos.Photos.ByTags(ctx, tags)
}

// UploaderName resolves the display name of the uploading alumni, "" when gone.
func (s *PhotoService) UploaderName(ctx context.Context, p *models.Photo) (string, error) {
	a, err := one(s.repos.Alumni.ByAlumniID(ctx, p.AlumniID))
	if err != nil || a == nil {
		return "", err
	}
	return a.Name, nil
}

type UploadRequest struct {
	AlumniID     string
	EventID      string
	Tags         []string
	FileName     string
	DeclaredType string
	Size         int64
	Body         io.Reader
}

// Upload stores the binary and then its metadata record. When the metadata
// insert fails the stored binary is removed again.
func (s *PhotoService) Upload(ctx context.Context, req UploadRequest) (*models.Photo, error) {
	if req.AlumniID == "" {
		return nil, invalid("Alumni_id is required")
	}
	contentType, body, err := s.policy.Prepare(req.DeclaredType, req.Size, req.Body)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	file, err := s.files.Upload(ctx, photostore.FileName(req.FileName, now), contentType, body)
	if err != nil {
		if errors.Is(err, photostore.ErrTooLarge) {
			return nil, err
		}
		return nil, &StorageError{Op: "upload", Err: err}
	}

	p := &models.Photo{
		ID:         bson.NewObjectID(),
		FileID:     file.ID,
		FileName:   file.Name,
		FileSize:   file.Size,
		MimeType:   contentType,
		AlumniID:   req.AlumniID,
		EventID:    req.EventID,
		Tags:       req.Tags,
		UploadDate: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if p.PhotoID, err = s.repos.Photos.NextID(ctx); err == nil {
		err = s.repos.Photos.Insert(ctx, p)
	}
	if err != nil {
		if derr := s.files.Delete(ctx, file.ID); derr != nil {
			log.Printf("upload %s: remove stored binary %s: %v", req.AlumniID, file.ID.Hex(), derr)
		}
		return nil, err
	}
	return p, nil
}

// Open streams a stored binary. The caller closes the reader.
func (s *PhotoService) Open(ctx context.Context, fileID bson.ObjectID) (io.ReadCloser, photostore.File, error) {
	return s.files.Open(ctx, fileID)
}

// DeleteByFileID removes the binary and then its metadata. The two steps are
// not atomic; a failure in either is returned.
func (s *PhotoService) DeleteByFileID(ctx context.Context, fileID bson.ObjectID) error {
	if err := s.files.Delete(ctx, fileID); err != nil {
		if errors.Is(err, photostore.ErrNotFound) {
			return &NotFoundError{Kind: "file", ID: fileID.Hex()}
		}
		return &StorageError{Op: "delete", Err: err}
	}
	p, err := one(s.repos.Photos.ByFileID(ctx, fileID))
	if err != nil || p == nil {
		return err
	}
	_, err = s.repos.Photos.Delete(ctx, p.ID)
	return err
}

// Delete removes a photo record by internal id together with its binary.
func (s *PhotoService) Delete(ctx context.Context, id string) (bool, error) {
	p, err := s.ByID(ctx, id)
	if err != nil || p == nil {
		return false, err
	}
	if err := s.files.Delete(ctx, p.FileID); err != nil && !errors.Is(err, photostore.ErrNotFound) {
		return false, &StorageError{Op: "delete", Err: err}
	}
	return s.repos.Photos.Delete(ctx, p.ID)
}

// Create records metadata for a binary stored out of band.
func (s *PhotoService) Create(ctx context.Context, in dto.PhotoInput) (*models.Photo, error) {
	if err := dto.Validate(in); err != nil {
		return nil, asValidation(err)
	}
	p, err := in.Model()
	if err != nil {
		return nil, asValidation(err)
	}
	if p.PhotoID, err = s.repos.Photos.NextID(ctx); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	p.ID = bson.NewObjectID()
	p.UploadDate, p.CreatedAt, p.UpdatedAt = now, now, now
	if err := s.repos.Photos.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PhotoService) Update(ctx context.Context, id string, in dto.PhotoUpdateInput) (*models.Photo, error) {
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
	set["Updated_at"] = s.now().UTC()

	p, err := s.repos.Photos.Update(ctx, oid, set)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Kind: "photo", ID: id}
	}
	return p, err
}
