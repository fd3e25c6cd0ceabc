// Package photostore keeps photo binaries and enforces the upload policy.
package photostore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrNotFound        = errors.New("file not found")
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("only image files are allowed")
)

// File describes a stored binary.
type File struct {
	ID          bson.ObjectID
	Name        string
	ContentType string
	Size        int64
	UploadDate  time.Time
}

type Store interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (File, error)
	// Open returns a stream over the binary; the caller closes it.
	Open(ctx context.Context, id bson.ObjectID) (io.ReadCloser, File, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

var AllowedTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif"}

// DefaultMaxSize is 16 MiB.
const DefaultMaxSize int64 = 16 << 20

// sniffLen matches mimetype's default read limit.
const sniffLen = 3072

type Policy struct {
	MaxSize int64
	Allowed []string
}

func NewPolicy(maxSize int64) Policy {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return Policy{MaxSize: maxSize, Allowed: AllowedTypes}
}

// Prepare checks the declared type and size, sniffs the content, and returns
// the content type to store together with a reader that yields the whole
// body and fails once more than MaxSize bytes are read.
func (p Policy) Prepare(declared string, size int64, r io.Reader) (string, io.Reader, error) {
	declared = strings.ToLower(strings.TrimSpace(strings.SplitN(declared, ";", 2)[0]))
	if !slices.Contains(p.Allowed, declared) {
		return "", nil, ErrUnsupportedType
	}
	if size > p.MaxSize {
		return "", nil, ErrTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	if !p.allows(detected) {
		return "", nil, ErrUnsupportedType
	}

	body := io.MultiReader(bytes.NewReader(head), r)
	return declared, &limitedReader{r: body, remaining: p.MaxSize}, nil
}

func (p Policy) allows(m *mimetype.MIME) bool {
	for _, allowed := range p.Allowed {
		if m.Is(allowed) {
			return true
		}
	}
	return false
}

type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(b []byte) (int, error) {
	n, err := l.r.Read(b)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, ErrTooLarge
	}
	return n, err
}

// FileName builds the stored name "<unix-millis>_<slug(base)><ext>".
func FileName(original string, now time.Time) string {
	base := filepath.Base(original)
	ext := strings.ToLower(filepath.Ext(base))
	stem := slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
	if stem == "" {
		stem = "photo"
	}
	return fmt.Sprintf("%d_%s%s", now.UnixMilli(), stem, ext)
}
