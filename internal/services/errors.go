package services

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrInvalidCredentials is the only login failure callers see.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Internal login outcomes, logged but never returned.
var (
	errPrincipalNotFound  = errors.New("principal not found")
	errCredentialMismatch = errors.New("credential mismatch")
)

// ValidationError reports input the caller can fix.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func asValidation(err error) error {
	if err == nil {
		return nil
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return err
	}
	return &ValidationError{Msg: err.Error()}
}

// NotFoundError names the missing record.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %s not found", e.Kind, e.ID) }

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, invalid("invalid id %q", id)
	}
	return oid, nil
}
