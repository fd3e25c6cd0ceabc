package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Event struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	EventID     string        `bson:"Event_id" json:"Event_id"`
	Name        string        `bson:"Name" json:"Name"`
	Description string        `bson:"Description,omitempty" json:"Description,omitempty"`
	Location    string        `bson:"Location,omitempty" json:"Location,omitempty"`
	Date        time.Time     `bson:"Date" json:"Date"`
	Time        string        `bson:"Time,omitempty" json:"Time,omitempty"`
	Capacity    int           `bson:"Capacity,omitempty" json:"Capacity,omitempty"`
	// OrganizerID is a weak reference to Alumni.AlumniID.
	OrganizerID string    `bson:"Organizer_id" json:"Organizer_id"`
	CreatedAt   time.Time `bson:"Created_at" json:"Created_at"`
	UpdatedAt   time.Time `bson:"Updated_at" json:"Updated_at"`
}
