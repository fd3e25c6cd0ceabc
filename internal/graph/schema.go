// Package graph serves the alumni directory as a GraphQL API.
package graph

import (
	"github.com/graphql-go/graphql"

	"alumni-directory/internal/services"
)

func idArg() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{"id": {Type: graphql.NewNonNull(graphql.ID)}}
}

func stringArg(name string) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{name: {Type: graphql.NewNonNull(graphql.String)}}
}

func inputArg(t graphql.Input) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(t)}}
}

func updateArgs(t graphql.Input) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id":    {Type: graphql.NewNonNull(graphql.ID)},
		"input": {Type: graphql.NewNonNull(t)},
	}
}

func listOf(t graphql.Type) graphql.Output {
	return graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t)))
}

// NewSchema builds the schema with every resolver bound to svc.
func NewSchema(svc *services.Services) (graphql.Schema, error) {
	r := &resolver{svc: svc}
	photo := photoType(svc)
	boolean := graphql.NewNonNull(graphql.Boolean)

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getAlumni":           {Type: listOf(alumniType), Resolve: r.getAlumni},
			"getAlumniById":       {Type: alumniType, Args: idArg(), Resolve: r.getAlumniByID},
			"getAlumniByAlumniId": {Type: alumniType, Args: stringArg("Alumni_id"), Resolve: r.getAlumniByAlumniID},
			"getAlumniByEmail":    {Type: alumniType, Args: stringArg("Email"), Resolve: r.getAlumniByEmail},
			"getAlumniByEmployer": {Type: listOf(alumniType), Args: stringArg("Employer"), Resolve: r.getAlumniByEmployer},

			"getEvents":         {Type: listOf(eventType), Resolve: r.getEvents},
			"getEventById":      {Type: eventType, Args: idArg(), Resolve: r.getEventByID},
			"getEventByEventId": {Type: eventType, Args: stringArg("Event_id"), Resolve: r.getEventByEventID},
			"getEventsByDate":   {Type: listOf(eventType), Args: stringArg("Date"), Resolve: r.getEventsByDate},

			"getReservations":         {Type: listOf(reservationType), Resolve: r.getReservations},
			"getReservationById":      {Type: reservationType, Args: idArg(), Resolve: r.getReservationByID},
			"getReservationsByAlumni": {Type: listOf(reservationType), Args: stringArg("Alumni_id"), Resolve: r.getReservationsByAlumni},
			"getReservationsByEvent":  {Type: listOf(reservationType), Args: stringArg("Event_id"), Resolve: r.getReservationsByEvent},

			"getPhotos":         {Type: listOf(photo), Resolve: r.getPhotos},
			"getPhotoById":      {Type: photo, Args: idArg(), Resolve: r.getPhotoByID},
			"getPhotosByEvent":  {Type: listOf(photo), Args: stringArg("Event_id"), Resolve: r.getPhotosByEvent},
			"getPhotosByAlumni": {Type: listOf(photo), Args: stringArg("Alumni_id"), Resolve: r.getPhotosByAlumni},
			"getPhotosByTags": {
				Type:    listOf(photo),
				Args:    graphql.FieldConfigArgument{"Tags": {Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))}},
				Resolve: r.getPhotosByTags,
			},

			"getAdmins":    {Type: listOf(adminType), Resolve: r.getAdmins},
			"getAdminById": {Type: adminType, Args: idArg(), Resolve: r.getAdminByID},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createAlumni": {Type: graphql.NewNonNull(alumniType), Args: inputArg(alumniInput), Resolve: r.createAlumni},
			"updateAlumni": {Type: graphql.NewNonNull(alumniType), Args: updateArgs(alumniUpdateInput), Resolve: r.updateAlumni},
			"deleteAlumni": {Type: boolean, Args: idArg(), Resolve: r.deleteAlumni},

			"createEvent": {Type: graphql.NewNonNull(eventType), Args: inputArg(eventInput), Resolve: r.createEvent},
			"updateEvent": {Type: graphql.NewNonNull(eventType), Args: updateArgs(eventUpdateInput), Resolve: r.updateEvent},
			"deleteEvent": {Type: boolean, Args: idArg(), Resolve: r.deleteEvent},

			"createReservation": {Type: graphql.NewNonNull(reservationType), Args: inputArg(reservationInput), Resolve: r.createReservation},
			"updateReservation": {Type: graphql.NewNonNull(reservationType), Args: updateArgs(reservationUpdateInput), Resolve: r.updateReservation},
			"deleteReservation": {Type: boolean, Args: idArg(), Resolve: r.deleteReservation},

			"createPhoto": {Type: graphql.NewNonNull(photo), Args: inputArg(photoInput), Resolve: r.createPhoto},
			"updatePhoto": {Type: graphql.NewNonNull(photo), Args: updateArgs(photoUpdateInput), Resolve: r.updatePhoto},
			"deletePhoto": {Type: boolean, Args: idArg(), Resolve: r.deletePhoto},

			"createAdmin": {Type: graphql.NewNonNull(adminType), Args: inputArg(adminInput), Resolve: r.createAdmin},
			"updateAdmin": {Type: graphql.NewNonNull(adminType), Args: updateArgs(adminUpdateInput), Resolve: r.updateAdmin},
			"deleteAdmin": {Type: boolean, Args: idArg(), Resolve: r.deleteAdmin},

			"loginAlumni": {
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"Email":    {Type: graphql.NewNonNull(graphql.String)},
					"Password": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.loginAlumni,
			},
			"loginAdmin": {
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"Username": {Type: graphql.NewNonNull(graphql.String)},
					"Password": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.loginAdmin,
			},
			"registerAlumni": {Type: graphql.NewNonNull(authPayloadType), Args: inputArg(alumniInput), Resolve: r.registerAlumni},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}
