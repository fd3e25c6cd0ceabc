package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"alumni-directory/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire names, e.g. Graduation_year.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterValidation("employment_status", oneOf(models.EmploymentStatuses))
	v.RegisterValidation("admin_role", oneOf([]string{models.RoleSuperAdmin, models.RoleAdmin, models.RoleModerator}))
	v.RegisterValidation("payment_status", oneOf([]string{models.PaymentPaid, models.PaymentPending, models.PaymentRefunded, models.PaymentCancelled}))
	v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

// Validate checks v against its struct tags and flattens the result into a
// single readable message.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "employment_status":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.Join(models.EmploymentStatuses, ", "))
	case "admin_role":
		return fmt.Sprintf("%s must be one of Super Admin, Admin, Moderator", fe.Field())
	case "payment_status":
		return fmt.Sprintf("%s must be one of Paid, Pending, Refunded, Cancelled", fe.Field())
	case "date":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD or RFC 3339)", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
}

// Bind copies loosely typed input (a GraphQL argument map or a parsed JSON
// body) into dst without validating it.
func Bind(input any, dst any) error {
	raw, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return nil
}

// Decode is Bind followed by Validate.
func Decode(input any, dst any) error {
	if err := Bind(input, dst); err != nil {
		return err
	}
	return Validate(dst)
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// ParseDate accepts a calendar date or a full RFC 3339 timestamp. Calendar
// dates are taken as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date", s)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
