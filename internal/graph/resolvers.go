package graph

import (
	"context"

	"github.com/graphql-go/graphql"

	"alumni-directory/dto"
	"alumni-directory/internal/auth"
	"alumni-directory/internal/services"
)

type resolver struct {
	svc *services.Services
}

func str(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func strs(p graphql.ResolveParams, name string) []string {
	raw, _ := p.Args[name].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func bind[T any](p graphql.ResolveParams) (T, error) {
	var in T
	err := dto.Bind(p.Args["input"], &in)
	return in, err
}

// nullable turns a missing record into a GraphQL null.
func nullable[T any](v *T, err error) (any, error) {
	if err != nil || v == nil {
		return nil, err
	}
	return v, nil
}

func list[T any](v []T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ownsIfSet denies a non-admin caller that names someone else as owner.
func ownsIfSet(ctx context.Context, owner *string) error {
	if owner == nil {
		return nil
	}
	_, err := auth.RequireOwnerOrAdmin(ctx, *owner)
	return err
}

// Queries

func (r *resolver) getAlumni(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	return list(r.svc.Alumni.List(p.Context))
}

func (r *resolver) getAlumniByID(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	return nullable(r.svc.Alumni.ByID(p.Context, str(p, "id")))
}

func (r *resolver) getAlumniByAlumniID(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	return nullable(r.svc.Alumni.ByAlumniID(p.Context, str(p, "Alumni_id")))
}

func (r *resolver) getAlumniByEmail(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	return nullable(r.svc.Alumni.ByEmail(p.Context, str(p, "Email")))
}

func (r *resolver) getAlumniByEmployer(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	return list(r.svc.Alumni.ByEmployer(p.Context, str(p, "Employer")))
}

func (r *resolver) getEvents(p graphql.ResolveParams) (any, error) {
	return list(r.svc.Events.List(p.Context))
}

func (r *resolver) getEventByID(p graphql.ResolveParams) (any, error) {
	return nullable(r.svc.Events.ByID(p.Context, str(p, "id")))
}

func (r *resolver) getEventByEventID(p graphql.ResolveParams) (any, error) {
	return nullable(r.svc.Events.ByEventID(p.Context, str(p, "Event_id")))
}

func (r *resolver) getEventsByDate(p graphql.ResolveParams) (any, error) {
	return list(r.svc.Events.ByDate(p.Context, str(p, "Date")))
}

func (r *resolver) getReservations(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	return list(r.svc.Reservations.List(p.Context))
}

func (r *resolver) getReservationByID(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	return nullable(r.svc.Reservations.ByID(p.Context, str(p, "id")))
}

func (r *resolver) getReservationsByAlumni(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	return list(r.svc.Reservations.ByAlumni(p.Context, str(p, "Alumni_id")))
}

func (r *resolver) getReservationsByEvent(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	return list(r.svc.Reservations.ByEvent(p.Context, str(p, "Event_id")))
}

func (r *resolver) getPhotos(p graphql.ResolveParams) (any, error) {
	return list(r.svc.Photos.List(p.Context))
}

func (r *resolver) getPhotoByID(p graphql.ResolveParams) (any, error) {
	return nullable(r.svc.Photos.ByID(p.Context, str(p, "id")))
}

func (r *resolver) getPhotosByEvent(p graphql.ResolveParams) (any, error) {
	return list(r.svc.Photos.ByEvent(p.Context, str(p, "Event_id")))
}

func (r *resolver) getPhotosByAlumni(p graphql.ResolveParams) (any, error) {
	return list(r.svc.Photos.ByAlumni(p.Context, str(p, "Alumni_id")))
}

func (r *resolver) getPhotosByTags(p graphql.ResolveParams) (any, error) {
	return list(r.svc.Photos.ByTags(p.Context, strs(p, "Tags")))
}

func (r *resolver) getAdmins(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAdmin(p.Context); err != nil {
		return nil, err
	}
	return list(r.svc.Admins.List(p.Context))
}

func (r *resolver) getAdminByID(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAdmin(p.Context); err != nil {
		return nil, err
	}
	return nullable(r.svc.Admins.ByID(p.Context, str(p, "id")))
}

// Alumni mutations

func (r *resolver) createAlumni(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAdmin(p.Context); err != nil {
		return nil, err
	}
	in, err := bind[dto.AlumniInput](p)
	if err != nil {
		return nil, err
	}
	return nullable(r.svc.Alumni.Create(p.Context, in))
}

func (r *resolver) updateAlumni(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	id := str(p, "id")
	existing, err := r.svc.Alumni.ByID(p.Context, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &services.NotFoundError{Kind: "alumni", ID: id}
	}
	if _, err := auth.RequireOwnerOrAdmin(p.Context, existing.AlumniID); err != nil {
		return nil, err
	}
	in, err := bind[dto.AlumniUpdateInput](p)
	if err != nil {
		return nil, err
	}
	return nullable(r.svc.Alumni.Update(p.Context, id, in))
}

func (r *resolver) deleteAlumni(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	id := str(p, "id")
	existing, err := r.svc.Alumni.ByID(p.Context, id)
	if err != nil || existing == nil {
		return false, err
	}
	if _, err := auth.RequireOwnerOrAdmin(p.Context, existing.AlumniID); err != nil {
		return nil, err
	}
	return r.svc.Alumni.Delete(p.Context, id)
}

// Event mutations

func (r *resolver) createEvent(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	in, err := bind[dto.EventInput](p)
	if err != nil {
		return nil, err
	}
	if _, err := auth.RequireOwnerOrAdmin(p.Context, in.OrganizerID); err != nil {
		return nil, err
	}
	return nullable(r.svc.Events.Create(p.Context, in))
}

func (r *resolver) updateEvent(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	id := str(p, "id")
	existing, err := r.svc.Events.ByID(p.Context, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &services.NotFoundError{Kind: "event", ID: id}
	}
	if _, err := auth.RequireOwnerOrAdmin(p.Context, existing.OrganizerID); err != nil {
		return nil, err
	}
	in, err := bind[dto.EventUpdateInput](p)
	if err != nil {
		return nil, err
	}
	if err := ownsIfSet(p.Context, in.OrganizerID); err != nil {
		return nil, err
	}
	return nullable(r.svc.Events.Update(p.Context, id, in))
}

func (r *resolver) deleteEvent(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	id := str(p, "id")
	existing, err := r.svc.Events.ByID(p.Context, id)
	if err != nil || existing == nil {
		return false, err
	}
	if _, err := auth.RequireOwnerOrAdmin(p.Context, existing.OrganizerID); err != nil {
		return nil, err
	}
	return r.svc.Events.Delete(p.Context, id)
}

// Reservation mutations

func (r *resolver) createReservation(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	in, err := bind[dto.ReservationInput](p)
	if err != nil {
		return nil, err
	}
	if _, err := auth.RequireOwnerOrAdmin(p.Context, in.AlumniID); err != nil {
		return nil, err
	}
	return nullable(r.svc.Reservations.Create(p.Context, in))
}

func (r *resolver) updateReservation(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	id := str(p, "id")
	existing, err := r.svc.Reservations.ByID(p.Context, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &services.NotFoundError{Kind: "reservation", ID: id}
	}
	if _, err := auth.RequireOwnerOrAdmin(p.Context, existing.AlumniID); err != nil {
		return nil, err
	}
	in, err := bind[dto.ReservationUpdateInput](p)
	if err != nil {
		return nil, err
	}
	if err := ownsIfSet(p.Context, in.AlumniID); err != nil {
		return nil, err
	}
	return nullable(r.svc.Reservations.Update(p.Context, id, in))
}

func (r *resolver) deleteReservation(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	id := str(p, "id")
	existing, err := r.svc.Reservations.ByID(p.Context, id)
	if err != nil || existing == nil {
		return false, err
	}
	if _, err := auth.RequireOwnerOrAdmin(p.Context, existing.AlumniID); err != nil {
		return nil, err
	}
	return r.svc.Reservations.Delete(p.Context, id)
}

// Photo mutations

func (r *resolver) createPhoto(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	in, err := bind[dto.PhotoInput](p)
	if err != nil {
		return nil, err
	}
	if _, err := auth.RequireOwnerOrAdmin(p.Context, in.AlumniID); err != nil {
		return nil, err
	}
	return nullable(r.svc.Photos.Create(p.Context, in))
}

func (r *resolver) updatePhoto(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	id := str(p, "id")
	existing, err := r.svc.Photos.ByID(p.Context, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &services.NotFoundError{Kind: "photo", ID: id}
	}
	if _, err := auth.RequireOwnerOrAdmin(p.Context, existing.AlumniID); err != nil {
		return nil, err
	}
	in, err := bind[dto.PhotoUpdateInput](p)
	if err != nil {
		return nil, err
	}
	if err := ownsIfSet(p.Context, in.AlumniID); err != nil {
		return nil, err
	}
	return nullable(r.svc.Photos.Update(p.Context, id, in))
}

func (r *resolver) deletePhoto(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAuth(p.Context); err != nil {
		return nil, err
	}
	id := str(p, "id")
	existing, err := r.svc.Photos.ByID(p.Context, id)
	if err != nil || existing == nil {
		return false, err
	}
	if _, err := auth.RequireOwnerOrAdmin(p.Context, existing.AlumniID); err != nil {
		return nil, err
	}
	return r.svc.Photos.Delete(p.Context, id)
}

// Admin mutations

func (r *resolver) createAdmin(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAdmin(p.Context); err != nil {
		return nil, err
	}
	in, err := bind[dto.AdminInput](p)
	if err != nil {
		return nil, err
	}
	return nullable(r.svc.Admins.Create(p.Context, in))
}

func (r *resolver) updateAdmin(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAdmin(p.Context); err != nil {
		return nil, err
	}
	in, err := bind[dto.AdminUpdateInput](p)
	if err != nil {
		return nil, err
	}
	return nullable(r.svc.Admins.Update(p.Context, str(p, "id"), in))
}

func (r *resolver) deleteAdmin(p graphql.ResolveParams) (any, error) {
	if _, err := auth.RequireAdmin(p.Context); err != nil {
		return nil, err
	}
	return r.svc.Admins.Delete(p.Context, str(p, "id"))
}

// Authentication

func (r *resolver) loginAlumni(p graphql.ResolveParams) (any, error) {
	return nullable(r.svc.Auth.LoginAlumni(p.Context, str(p, "Email"), str(p, "Password")))
}

func (r *resolver) loginAdmin(p graphql.ResolveParams) (any, error) {
	return nullable(r.svc.Auth.LoginAdmin(p.Context, str(p, "Username"), str(p, "Password")))
}

func (r *resolver) registerAlumni(p graphql.ResolveParams) (any, error) {
	in, err := bind[dto.AlumniInput](p)
	if err != nil {
		return nil, err
	}
	return nullable(r.svc.Auth.RegisterAlumni(p.Context, in))
}
