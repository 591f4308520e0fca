package repository

import (
	"context"

	"flightdesk-service/internal/domain/entity"
)

// FlightStore provides exclusive commit cycles over the flights collection.
// Update loads the collection, passes the snapshot to fn, and durably
// commits it only when fn returns nil. Calls are serialized per collection.
type FlightStore interface {
	Update(ctx context.Context, fn func(snapshot *[]entity.Flight) error) error
	View(ctx context.Context, fn func(snapshot []entity.Flight) error) error
}
