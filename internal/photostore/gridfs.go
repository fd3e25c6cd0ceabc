package photostore

import (
	"context"
	"errors"
	"io"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const BucketName = "photos"

type GridFSStore struct {
	bucket *mongo.GridFSBucket
}

func NewGridFSStore(db *mongo.Database) *GridFSStore {
	return &GridFSStore{bucket: db.GridFSBucket(options.GridFSBucket().SetName(BucketName))}
}

func (s *GridFSStore) Upload(ctx context.Context, name, contentType string, r io.Reader) (File, error) {
	counter := &countingReader{r: r}
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	id, err := s.bucket.UploadFromStream(ctx, name, counter, opts)
	if err != nil {
		return File{}, err
	}
	return File{ID: id, Name: name, ContentType: contentType, Size: counter.n}, nil
}

func (s *GridFSStore) Open(ctx context.Context, id bson.ObjectID) (io.ReadCloser, File, error) {
	stream, err := s.bucket.OpenDownloadStream(ctx, id)
	if errors.Is(err, mongo.ErrFileNotFound) {
		return nil, File{}, ErrNotFound
	}
	if err != nil {
		return nil, File{}, err
	}

	f := stream.GetFile()
	file := File{ID: id, Name: f.Name, Size: f.Length, UploadDate: f.UploadDate}
	if f.Metadata != nil {
		if ct, ok := f.Metadata.Lookup("contentType").StringValueOK(); ok {
			file.ContentType = ct
		}
	}
	return stream, file, nil
}

func (s *GridFSStore) Delete(ctx context.Context, id bson.ObjectID) error {
	err := s.bucket.Delete(ctx, id)
	if errors.Is(err, mongo.ErrFileNotFound) {
		return ErrNotFound
	}
	return err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	c.n += int64(n)
	return n, err
}
