package dto

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"alumni-directory/internal/models"
)

type LocationInput struct {
	City  string `json:"City,omitempty"`
	State string `json:"State,omitempty"`
}

func (l *LocationInput) model() *models.Location {
	if l == nil {
		return nil
	}
	return &models.Location{City: l.City, State: l.State}
}

type EmploymentHistoryInput struct {
	Employer        string         `json:"Employer,omitempty"`
	EmploymentTitle string         `json:"Employment_title,omitempty"`
	StartDate       string         `json:"Start_date,omitempty" validate:"omitempty,date"`
	EndDate         string         `json:"End_date,omitempty" validate:"omitempty,date"`
	Location        *LocationInput `json:"Location,omitempty"`
}

func employmentHistory(in []EmploymentHistoryInput) ([]models.EmploymentHistory, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]models.EmploymentHistory, 0, len(in))
	for _, h := range in {
		start, err := parseOptionalDate(h.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseOptionalDate(h.EndDate)
		if err != nil {
			return nil, err
		}
		out = append(out, models.EmploymentHistory{
			Employer:        h.Employer,
			EmploymentTitle: h.EmploymentTitle,
			StartDate:       start,
			EndDate:         end,
			Location:        h.Location.model(),
		})
	}
	return out, nil
}

type AlumniInput struct {
	Name              string                   `json:"Name" validate:"required"`
	GraduationYear    int                      `json:"Graduation_year" validate:"required,gte=1900,lte=2100"`
	FieldOfStudy      []string                 `json:"Field_of_study,omitempty"`
	Address           string                   `json:"Address,omitempty"`
	Phone             string                   `json:"Phone,omitempty"`
	Email             string                   `json:"Email" validate:"required,email"`
	Password          string                   `json:"Password" validate:"required"`
	EmploymentStatus  string                   `json:"Employment_status,omitempty" validate:"omitempty,employment_status"`
	Employer          string                   `json:"Employer,omitempty"`
	EmployerLocation  *LocationInput           `json:"Employer_location,omitempty"`
	EmploymentTitle   string                   `json:"Employment_title,omitempty"`
	EmploymentHistory []EmploymentHistoryInput `json:"Employment_history,omitempty" validate:"dive"`
	EventsHistory     []string                 `json:"Events_history,omitempty"`
}

// Model builds the document to insert. Password is left for the caller to hash.
func (in AlumniInput) Model() (*models.Alumni, error) {
	history, err := employmentHistory(in.EmploymentHistory)
	if err != nil {
		return nil, err
	}
	return &models.Alumni{
		Name:              strings.TrimSpace(in.Name),
		GraduationYear:    in.GraduationYear,
		FieldOfStudy:      in.FieldOfStudy,
		Address:           in.Address,
		Phone:             in.Phone,
		Email:             NormalizeEmail(in.Email),
		EmploymentStatus:  in.EmploymentStatus,
		Employer:          in.Employer,
		EmployerLocation:  in.EmployerLocation.model(),
		EmploymentTitle:   in.EmploymentTitle,
		EmploymentHistory: history,
		EventsHistory:     in.EventsHistory,
	}, nil
}

type AlumniUpdateInput struct {
	Name              *string                  `json:"Name,omitempty"`
	GraduationYear    *int                     `json:"Graduation_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	FieldOfStudy      []string                 `json:"Field_of_study,omitempty"`
	Address           *string                  `json:"Address,omitempty"`
	Phone             *string                  `json:"Phone,omitempty"`
	Email             *string                  `json:"Email,omitempty" validate:"omitempty,email"`
	Password          *string                  `json:"Password,omitempty"`
	EmploymentStatus  *string                  `json:"Employment_status,omitempty" validate:"omitempty,employment_status"`
	Employer          *string                  `json:"Employer,omitempty"`
	EmployerLocation  *LocationInput           `json:"Employer_location,omitempty"`
	EmploymentTitle   *string                  `json:"Employment_title,omitempty"`
	EmploymentHistory []EmploymentHistoryInput `json:"Employment_history,omitempty" validate:"dive"`
	EventsHistory     []string                 `json:"Events_history,omitempty"`
}

// Set returns the $set document for the supplied fields. Password is not
// included; the service hashes it separately.
func (in AlumniUpdateInput) Set() (bson.M, error) {
	set := bson.M{}
	put(set, "Name", in.Name)
	put(set, "Graduation_year", in.GraduationYear)
	putSlice(set, "Field_of_study", in.FieldOfStudy)
	put(set, "Address", in.Address)
	put(set, "Phone", in.Phone)
	if in.Email != nil {
		set["Email"] = NormalizeEmail(*in.Email)
	}
	put(set, "Employment_status", in.EmploymentStatus)
	put(set, "Employer", in.Employer)
	if in.EmployerLocation != nil {
		set["Employer_location"] = in.EmployerLocation.model()
	}
	put(set, "Employment_title", in.EmploymentTitle)
	if in.EmploymentHistory != nil {
		history, err := employmentHistory(in.EmploymentHistory)
		if err != nil {
			return nil, err
		}
		set["Employment_history"] = history
	}
	putSlice(set, "Events_history", in.EventsHistory)
	return set, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func put[T any](set bson.M, key string, v *T) {
	if v != nil {
		set[key] = *v
	}
}

func putSlice[T any](set bson.M, key string, v []T) {
	if v != nil {
		set[key] = v
	}
}
