package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Field names double as BSON keys and GraphQL field names.

type Location struct {
	City  string `bson:"City,omitempty" json:"City,omitempty"`
	State string `bson:"State,omitempty" json:"State,omitempty"`
}

type EmploymentHistory struct {
	Employer        string     `bson:"Employer,omitempty" json:"Employer,omitempty"`
	EmploymentTitle string     `bson:"Employment_title,omitempty" json:"Employment_title,omitempty"`
	StartDate       *time.Time `bson:"Start_date,omitempty" json:"Start_date,omitempty"`
	EndDate         *time.Time `bson:"End_date,omitempty" json:"End_date,omitempty"`
	Location        *Location  `bson:"Location,omitempty" json:"Location,omitempty"`
}

type Alumni struct {
	ID                bson.ObjectID       `bson:"_id,omitempty" json:"_id"`
	AlumniID          string              `bson:"Alumni_id" json:"Alumni_id"`
	Name              string              `bson:"Name" json:"Name"`
	GraduationYear    int                 `bson:"Graduation_year" json:"Graduation_year"`
	FieldOfStudy      []string            `bson:"Field_of_study,omitempty" json:"Field_of_study,omitempty"`
	Address           string              `bson:"Address,omitempty" json:"Address,omitempty"`
	Phone             string              `bson:"Phone,omitempty" json:"Phone,omitempty"`
	Email             string              `bson:"Email" json:"Email"`
	Password          string              `bson:"Password" json:"-"`
	EmploymentStatus  string              `bson:"Employment_status,omitempty" json:"Employment_status,omitempty"`
	Employer          string              `bson:"Employer,omitempty" json:"Employer,omitempty"`
	EmployerLocation  *Location           `bson:"Employer_location,omitempty" json:"Employer_location,omitempty"`
	EmploymentTitle   string              `bson:"Employment_title,omitempty" json:"Employment_title,omitempty"`
	EmploymentHistory []EmploymentHistory `bson:"Employment_history,omitempty" json:"Employment_history,omitempty"`
	EventsHistory     []string            `bson:"Events_history,omitempty" json:"Events_history,omitempty"`
	CreatedAt         time.Time           `bson:"Created_at" json:"Created_at"`
	UpdatedAt         time.Time           `bson:"Updated_at" json:"Updated_at"`
}

var EmploymentStatuses = []string{"Full-Time", "Part-Time", "Unemployed", "Student", "Self-Employed"}
