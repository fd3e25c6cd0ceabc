package graph

import (
	"time"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/v2/bson"

	"alumni-directory/internal/models"
	"alumni-directory/internal/services"
)

// resolveValue reads the struct field matching the GraphQL name and converts
// ids and timestamps to strings. Empty optional strings come back as null.
func resolveValue(p graphql.ResolveParams) (any, error) {
	v, err := graphql.DefaultResolveFn(p)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case bson.ObjectID:
		if t.IsZero() {
			return nil, nil
		}
		return t.Hex(), nil
	case time.Time:
		if t.IsZero() {
			return nil, nil
		}
		return t.UTC().Format(time.RFC3339), nil
	case *time.Time:
		if t == nil || t.IsZero() {
			return nil, nil
		}
		return t.UTC().Format(time.RFC3339), nil
	case string:
		if _, required := p.Info.ReturnType.(*graphql.NonNull); t == "" && !required {
			return nil, nil
		}
	}
	return v, nil
}

func scalar(t graphql.Output) *graphql.Field {
	return &graphql.Field{Type: t, Resolve: resolveValue}
}

func required(t graphql.Output) *graphql.Field {
	return scalar(graphql.NewNonNull(t))
}

var (
	stringsOut = graphql.NewList(graphql.String)

	employerLocationType = graphql.NewObject(graphql.ObjectConfig{
		Name: "EmployerLocation",
		Fields: graphql.Fields{
			"City":  scalar(graphql.String),
			"State": scalar(graphql.String),
		},
	})

	employmentHistoryType = graphql.NewObject(graphql.ObjectConfig{
		Name: "EmploymentHistory",
		Fields: graphql.Fields{
			"Employer":         scalar(graphql.String),
			"Employment_title": scalar(graphql.String),
			"Start_date":       scalar(graphql.String),
			"End_date":         scalar(graphql.String),
			"Location":         &graphql.Field{Type: employerLocationType},
		},
	})

	alumniType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Alumni",
		Fields: graphql.Fields{
			"_id":                required(graphql.ID),
			"Alumni_id":          required(graphql.String),
			"Name":               required(graphql.String),
			"Graduation_year":    required(graphql.Int),
			"Field_of_study":     &graphql.Field{Type: stringsOut},
			"Address":            scalar(graphql.String),
			"Phone":              scalar(graphql.String),
			"Email":              required(graphql.String),
			"Employment_status":  scalar(graphql.String),
			"Employer":           scalar(graphql.String),
			"Employer_location":  &graphql.Field{Type: employerLocationType},
			"Employment_title":   scalar(graphql.String),
			"Employment_history": &graphql.Field{Type: graphql.NewList(employmentHistoryType)},
			"Events_history":     &graphql.Field{Type: stringsOut},
			"Created_at":         scalar(graphql.String),
			"Updated_at":         scalar(graphql.String),
		},
	})

	eventType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Event",
		Fields: graphql.Fields{
			"_id":          required(graphql.ID),
			"Event_id":     required(graphql.String),
			"Name":         required(graphql.String),
			"Description":  scalar(graphql.String),
			"Location":     scalar(graphql.String),
			"Date":         required(graphql.String),
			"Time":         scalar(graphql.String),
			"Capacity":     scalar(graphql.Int),
			"Organizer_id": required(graphql.String),
			"Created_at":   scalar(graphql.String),
			"Updated_at":   scalar(graphql.String),
		},
	})

	paymentInformationType = graphql.NewObject(graphql.ObjectConfig{
		Name: "PaymentInformation",
		Fields: graphql.Fields{
			"Payment_method":   scalar(graphql.String),
			"Card_type":        scalar(graphql.String),
			"Last_four_digits": scalar(graphql.String),
			"Transaction_id":   scalar(graphql.String),
			"Payment_date":     scalar(graphql.String),
		},
	})

	reservationType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Reservation",
		Fields: graphql.Fields{
			"_id":                 required(graphql.ID),
			"Reservation_id":      required(graphql.String),
			"Alumni_id":           required(graphql.String),
			"Event_id":            required(graphql.String),
			"Number_of_attendees": scalar(graphql.Int),
			"Payment_amount":      scalar(graphql.Float),
			"Payment_status":      scalar(graphql.String),
			"Payment_information": &graphql.Field{Type: paymentInformationType},
			"Created_at":          scalar(graphql.String),
			"Updated_at":          scalar(graphql.String),
		},
	})

	adminType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Admin",
		Fields: graphql.Fields{
			"_id":        required(graphql.ID),
			"Admin_id":   required(graphql.String),
			"Username":   required(graphql.String),
			"Role":       required(graphql.String),
			"Email":      scalar(graphql.String),
			"Created_at": scalar(graphql.String),
			"Updated_at": scalar(graphql.String),
			"Last_login": scalar(graphql.String),
		},
	})

	authPayloadType = graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"alumni": &graphql.Field{Type: alumniType},
			"admin":  &graphql.Field{Type: adminType},
		},
	})
)

// photoType needs the services for Uploader_name.
func photoType(svc *services.Services) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Photo",
		Fields: graphql.Fields{
			"_id":       required(graphql.ID),
			"Photo_id":  required(graphql.String),
			"File_id":   required(graphql.ID),
			"File_name": required(graphql.String),
			"File_size": scalar(graphql.Int),
			"Mime_type": scalar(graphql.String),
			"Alumni_id": required(graphql.String),
			"Uploader_name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					var photo models.Photo
					switch src := p.Source.(type) {
					case *models.Photo:
						photo = *src
					case models.Photo:
						photo = src
					default:
						return nil, nil
					}
					name, err := svc.Photos.UploaderName(p.Context, &photo)
					if err != nil || name == "" {
						return nil, err
					}
					return name, nil
				},
			},
			"Event_id":    scalar(graphql.String),
			"Tags":        &graphql.Field{Type: stringsOut},
			"Upload_date": scalar(graphql.String),
			"Created_at":  scalar(graphql.String),
			"Updated_at":  scalar(graphql.String),
		},
	})
}

func inputField(t graphql.Input) *graphql.InputObjectFieldConfig {
	return &graphql.InputObjectFieldConfig{Type: t}
}

func inputFields(names map[string]graphql.Input) graphql.InputObjectConfigFieldMap {
	out := graphql.InputObjectConfigFieldMap{}
	for name, t := range names {
		out[name] = inputField(t)
	}
	return out
}

var (
	nonNullString = graphql.NewNonNull(graphql.String)
	stringList    = graphql.NewList(graphql.String)

	employerLocationInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "EmployerLocationInput",
		Fields: inputFields(map[string]graphql.Input{"City": graphql.String, "State": graphql.String}),
	})

	employmentHistoryInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EmploymentHistoryInput",
		Fields: inputFields(map[string]graphql.Input{
			"Employer":         graphql.String,
			"Employment_title": graphql.String,
			"Start_date":       graphql.String,
			"End_date":         graphql.String,
			"Location":         employerLocationInput,
		}),
	})

	paymentInformationInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PaymentInformationInput",
		Fields: inputFields(map[string]graphql.Input{
			"Payment_method":   graphql.String,
			"Card_type":        graphql.String,
			"Last_four_digits": graphql.String,
			"Transaction_id":   graphql.String,
			"Payment_date":     graphql.String,
		}),
	})
)

func alumniInputFields(create bool) map[string]graphql.Input {
	req := func(t graphql.Input) graphql.Input {
		if create {
			return graphql.NewNonNull(t)
		}
		return t
	}
	return map[string]graphql.Input{
		"Name":               req(graphql.String),
		"Graduation_year":    req(graphql.Int),
		"Field_of_study":     stringList,
		"Address":            graphql.String,
		"Phone":              graphql.String,
		"Email":              req(graphql.String),
		"Password":           req(graphql.String),
		"Employment_status":  graphql.String,
		"Employer":           graphql.String,
		"Employer_location":  employerLocationInput,
		"Employment_title":   graphql.String,
		"Employment_history": graphql.NewList(employmentHistoryInput),
		"Events_history":     stringList,
	}
}

var (
	alumniInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AlumniInput", Fields: inputFields(alumniInputFields(true)),
	})
	alumniUpdateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AlumniUpdateInput", Fields: inputFields(alumniInputFields(false)),
	})

	eventInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EventInput",
		Fields: inputFields(map[string]graphql.Input{
			"Name":         nonNullString,
			"Description":  graphql.String,
			"Location":     graphql.String,
			"Date":         nonNullString,
			"Time":         graphql.String,
			"Capacity":     graphql.Int,
			"Organizer_id": nonNullString,
		}),
	})
	eventUpdateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EventUpdateInput",
		Fields: inputFields(map[string]graphql.Input{
			"Name":         graphql.String,
			"Description":  graphql.String,
			"Location":     graphql.String,
			"Date":         graphql.String,
			"Time":         graphql.String,
			"Capacity":     graphql.Int,
			"Organizer_id": graphql.String,
		}),
	})

	reservationInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ReservationInput",
		Fields: inputFields(map[string]graphql.Input{
			"Alumni_id":           nonNullString,
			"Event_id":            nonNullString,
			"Number_of_attendees": graphql.Int,
			"Payment_amount":      graphql.Float,
			"Payment_status":      graphql.String,
			"Payment_information": paymentInformationInput,
		}),
	})
	reservationUpdateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ReservationUpdateInput",
		Fields: inputFields(map[string]graphql.Input{
			"Alumni_id":           graphql.String,
			"Event_id":            graphql.String,
			"Number_of_attendees": graphql.Int,
			"Payment_amount":      graphql.Float,
			"Payment_status":      graphql.String,
			"Payment_information": paymentInformationInput,
		}),
	})

	photoInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PhotoInput",
		Fields: inputFields(map[string]graphql.Input{
			"File_id":   graphql.NewNonNull(graphql.ID),
			"File_name": nonNullString,
			"File_size": graphql.Int,
			"Mime_type": graphql.String,
			"Alumni_id": nonNullString,
			"Event_id":  graphql.String,
			"Tags":      stringList,
		}),
	})
	photoUpdateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PhotoUpdateInput",
		Fields: inputFields(map[string]graphql.Input{
			"File_id":   graphql.ID,
			"File_name": graphql.String,
			"File_size": graphql.Int,
			"Mime_type": graphql.String,
			"Alumni_id": graphql.String,
			"Event_id":  graphql.String,
			"Tags":      stringList,
		}),
	})

	adminInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AdminInput",
		Fields: inputFields(map[string]graphql.Input{
			"Username": nonNullString,
			"Password": nonNullString,
			"Role":     graphql.String,
			"Email":    graphql.String,
		}),
	})
	adminUpdateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AdminUpdateInput",
		Fields: inputFields(map[string]graphql.Input{
			"Username": graphql.String,
			"Password": graphql.String,
			"Role":     graphql.String,
			"Email":    graphql.String,
		}),
	})
)
