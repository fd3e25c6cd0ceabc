package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	PaymentPaid      = "Paid"
	PaymentPending   = "Pending"
	PaymentRefunded  = "Refunded"
	PaymentCancelled = "Cancelled"
)

type PaymentInformation struct {
	PaymentMethod  string     `bson:"Payment_method,omitempty" json:"Payment_method,omitempty"`
	CardType       string     `bson:"Card_type,omitempty" json:"Card_type,omitempty"`
	LastFourDigits string     `bson:"Last_four_digits,omitempty" json:"Last_four_digits,omitempty"`
	TransactionID  string     `bson:"Transaction_id,omitempty" json:"Transaction_id,omitempty"`
	PaymentDate    *time.Time `bson:"Payment_date,omitempty" json:"Payment_date,omitempty"`
}

// Reservation is unique per (AlumniID, EventID).
type Reservation struct {
	ID                 bson.ObjectID       `bson:"_id,omitempty" json:"_id"`
	ReservationID      string              `bson:"Reservation_id" json:"Reservation_id"`
	AlumniID           string              `bson:"Alumni_id" json:"Alumni_id"`
	EventID            string              `bson:"Event_id" json:"Event_id"`
	NumberOfAttendees  int                 `bson:"Number_of_attendees" json:"Number_of_attendees"`
	PaymentAmount      float64             `bson:"Payment_amount,omitempty" json:"Payment_amount,omitempty"`
	PaymentStatus      string              `bson:"Payment_status" json:"Payment_status"`
	PaymentInformation *PaymentInformation `bson:"Payment_information,omitempty" json:"Payment_information,omitempty"`
	CreatedAt          time.Time           `bson:"Created_at" json:"Created_at"`
	UpdatedAt          time.Time           `bson:"Updated_at" json:"Updated_at"`
}
