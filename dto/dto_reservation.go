package dto

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"alumni-directory/internal/models"
)

type PaymentInformationInput struct {
	PaymentMethod  string `json:"Payment_method,omitempty"`
	CardType       string `json:"Card_type,omitempty"`
	LastFourDigits string `json:"Last_four_digits,omitempty" validate:"omitempty,len=4,numeric"`
	TransactionID  string `json:"Transaction_id,omitempty"`
	PaymentDate    string `json:"Payment_date,omitempty" validate:"omitempty,date"`
}

func (p *PaymentInformationInput) model() (*models.PaymentInformation, error) {
	if p == nil {
		return nil, nil
	}
	date, err := parseOptionalDate(p.PaymentDate)
	if err != nil {
		return nil, err
	}
	return &models.PaymentInformation{
		PaymentMethod:  p.PaymentMethod,
		CardType:       p.CardType,
		LastFourDigits: p.LastFourDigits,
		TransactionID:  p.TransactionID,
		PaymentDate:    date,
	}, nil
}

type ReservationInput struct {
	AlumniID           string                   `json:"Alumni_id" validate:"required"`
	EventID            string                   `json:"Event_id" validate:"required"`
	NumberOfAttendees  *int                     `json:"Number_of_attendees,omitempty" validate:"omitempty,gte=1"`
	PaymentAmount      float64                  `json:"Payment_amount,omitempty" validate:"gte=0"`
	PaymentStatus      string                   `json:"Payment_status,omitempty" validate:"omitempty,payment_status"`
	PaymentInformation *PaymentInformationInput `json:"Payment_information,omitempty"`
}

// Model applies the defaults: one attendee, payment Pending.
func (in ReservationInput) Model() (*models.Reservation, error) {
	payment, err := in.PaymentInformation.model()
	if err != nil {
		return nil, err
	}
	attendees := 1
	if in.NumberOfAttendees != nil {
		attendees = *in.NumberOfAttendees
	}
	status := in.PaymentStatus
	if status == "" {
		status = models.PaymentPending
	}
	return &models.Reservation{
		AlumniID:           in.AlumniID,
		EventID:            in.EventID,
		NumberOfAttendees:  attendees,
		PaymentAmount:      in.PaymentAmount,
		PaymentStatus:      status,
		PaymentInformation: payment,
	}, nil
}

type ReservationUpdateInput struct {
	AlumniID           *string                  `json:"Alumni_id,omitempty"`
	EventID            *string                  `json:"Event_id,omitempty"`
	NumberOfAttendees  *int                     `json:"Number_of_attendees,omitempty" validate:"omitempty,gte=1"`
	PaymentAmount      *float64                 `json:"Payment_amount,omitempty" validate:"omitempty,gte=0"`
	PaymentStatus      *string                  `json:"Payment_status,omitempty" validate:"omitempty,payment_status"`
	PaymentInformation *PaymentInformationInput `json:"Payment_information,omitempty"`
}

func (in ReservationUpdateInput) Set() (bson.M, error) {
	set := bson.M{}
	put(set, "Alumni_id", in.AlumniID)
	put(set, "Event_id", in.EventID)
	put(set, "Number_of_attendees", in.NumberOfAttendees)
	put(set, "Payment_amount", in.PaymentAmount)
	put(set, "Payment_status", in.PaymentStatus)
	if in.PaymentInformation != nil {
		payment, err := in.PaymentInformation.model()
		if err != nil {
			return nil, err
		}
		set["Payment_information"] = payment
	}
	return set, nil
}
