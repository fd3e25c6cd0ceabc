package bootstrap

import (
	"context"
	"fmt"

	"alumni-directory/internal/repository"
)

type index struct {
	collection string
	unique     bool
	fields     []string
}

var indexes = []index{
	{repository.AlumniCollection, true, []string{"Alumni_id"}},
	{repository.AlumniCollection, true, []string{"Email"}},
	{repository.AlumniCollection, false, []string{"Employer"}},
	{repository.AlumniCollection, false, []string{"Graduation_year"}},

	{repository.AdminCollection, true, []string{"Admin_id"}},
	{repository.AdminCollection, true, []string{"Username"}},

	{repository.EventCollection, true, []string{"Event_id"}},
	{repository.EventCollection, false, []string{"Date"}},
	{repository.EventCollection, false, []string{"Organizer_id"}},

	{repository.ReservationCollection, true, []string{"Reservation_id"}},
	{repository.ReservationCollection, false, []string{"Event_id"}},
	// One reservation per alumni per event.
	{repository.ReservationCollection, true, []string{"Alumni_id", "Event_id"}},

	{repository.PhotoCollection, true, []string{"Photo_id"}},
	{repository.PhotoCollection, false, []string{"Alumni_id"}},
	{repository.PhotoCollection, false, []string{"Event_id"}},
	{repository.PhotoCollection, false, []string{"Tags"}},
}

func EnsureIndexes(ctx context.Context, store repository.Store) error {
	for _, ix := range indexes {
		if err := store.Collection(ix.collection).EnsureIndex(ctx, ix.unique, ix.fields...); err != nil {
			return fmt.Errorf("ensure index %s%v: %w", ix.collection, ix.fields, err)
		}
	}
	return nil
}
