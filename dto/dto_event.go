package dto

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"alumni-directory/internal/models"
)

type EventInput struct {
	Name        string `json:"Name" validate:"required"`
	Description string `json:"Description,omitempty"`
	Location    string `json:"Location,omitempty"`
	Date        string `json:"Date" validate:"required,date"`
	Time        string `json:"Time,omitempty"`
	Capacity    int    `json:"Capacity,omitempty" validate:"gte=0"`
	OrganizerID string `json:"Organizer_id" validate:"required"`
}

func (in EventInput) Model() (*models.Event, error) {
	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	return &models.Event{
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		Date:        date,
		Time:        in.Time,
		Capacity:    in.Capacity,
		OrganizerID: in.OrganizerID,
	}, nil
}

type EventUpdateInput struct {
	Name        *string `json:"Name,omitempty"`
	Description *string `json:"Description,omitempty"`
	Location    *string `json:"Location,omitempty"`
	Date        *string `json:"Date,omitempty" validate:"omitempty,date"`
	Time        *string `json:"Time,omitempty"`
	Capacity    *int    `json:"Capacity,omitempty" validate:"omitempty,gte=0"`
	OrganizerID *string `json:"Organizer_id,omitempty"`
}

func (in EventUpdateInput) Set() (bson.M, error) {
	set := bson.M{}
	put(set, "Name", in.Name)
	put(set, "Description", in.Description)
	put(set, "Location", in.Location)
	if in.Date != nil {
		date, err := ParseDate(*in.Date)
		if err != nil {
			return nil, err
		}
		set["Date"] = date
	}
	put(set, "Time", in.Time)
	put(set, "Capacity", in.Capacity)
	put(set, "Organizer_id", in.OrganizerID)
	return set, nil
}
