package companion

import (
	"context"
	"slices"

	"github.com/rcliao/companion/internal/model"
)

func activeTrip(t model.Trip) bool { return t.IsActive }

// StartTrip prepends a running trip. Only one trip may be active at a time.
func (a *App) StartTrip(ctx context.Context) (model.Trip, error) {
	var started model.Trip
	err := a.trips.Mutate(ctx, func(items []model.Trip) ([]model.Trip, error) {
		if slices.ContainsFunc(items, activeTrip) {
			return nil, ErrTripActive
		}
		started = model.Trip{
			ID:        a.ids.New(),
			StartTime: a.nowMillis(),
			IsActive:  true,
		}
		return append([]model.Trip{started}, items...), nil
	})
	if err != nil {
		return model.Trip{}, err
	}
	return started, nil
}

// EndTrip stops the active trip.
func (a *App) EndTrip(ctx context.Context) (model.Trip, error) {
	var ended model.Trip
	err := a.trips.Mutate(ctx, func(items []model.Trip) ([]model.Trip, error) {
		i := slices.IndexFunc(items, activeTrip)
		if i < 0 {
			return nil, notFound("trip", "active")
		}
		items[i].EndTime = a.nowMillis().Ptr()
		items[i].IsActive = false
		ended = items[i]
		return items, nil
	})
	if err != nil {
		return model.Trip{}, err
	}
	return ended, nil
}

func (a *App) ActiveTrip() (model.Trip, bool) {
	return a.trips.Find(activeTrip)
}

func (a *App) Trips() []model.Trip {
	return a.trips.All()
}
