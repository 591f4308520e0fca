package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flightdesk-service/internal/domain/apperrors"
	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/domain/repository"
	"flightdesk-service/pkg/logger"
	"flightdesk-service/pkg/metrics"
)

// maxIDRetries bounds how often a booking retries after an id collision.
const maxIDRetries = 3

// BookingRequest carries the caller's input for creating a flight.
type BookingRequest struct {
	From     string
	To       string
	Aircraft string
}

// BookingService handles flight booking and check-in
type BookingService struct {
	flights repository.FlightStore
	routes  entity.RouteTable
	logger  logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(flights repository.FlightStore, routes entity.RouteTable, log logger.Logger, m *metrics.Metrics) *BookingService {
	return &BookingService{
		flights: flights,
		routes:  routes,
		logger:  log,
		metrics: m,
		now:     time.Now,
	}
}

// Book validates the request, generates a flight id, and commits a new
// booked flight for the given user. Returns the new flight id.
func (s *BookingService) Book(ctx context.Context, userID string, req BookingRequest) (int64, error) {
	if userID == "" {
		return 0, apperrors.ErrUnauthenticated
	}

	var flightID int64
	err := s.flights.Update(ctx, func(snapshot *[]entity.Flight) error {
		var err error
		for attempt := 0; attempt < maxIDRetries; attempt++ {
			flightID, err = book(snapshot, userID, req, s.routes, s.now())
			if !errors.Is(err, apperrors.ErrIDCollision) {
				return err
			}
			// let the coarse clock tick past the colliding id
			time.Sleep(time.Millisecond)
		}
		return err
	})
	if err != nil {
		s.countError("book")
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.FlightsBooked.Inc()
	}
	s.logger.Info("Flight booked", "flightId", flightID, "userId", userID, "from", req.From, "to", req.To, "aircraft", req.Aircraft)
	return flightID, nil
}

// CheckIn transitions the caller's flight from booked to completed.
// Checking in an already-completed flight succeeds without changes.
func (s *BookingService) CheckIn(ctx context.Context, flightID int64, userID string) error {
	if userID == "" {
		return apperrors.ErrUnauthenticated
	}

	err := s.flights.Update(ctx, func(snapshot *[]entity.Flight) error {
		return checkIn(*snapshot, flightID, userID)
	})
	if err != nil {
		s.countError("checkin")
		return err
	}

	if s.metrics != nil {
		s.metrics.CheckIns.Inc()
	}
	s.logger.Info("Flight checked in", "flightId", flightID, "userId", userID)
	return nil
}

// FlightsForUser lists the caller's flights for display.
func (s *BookingService) FlightsForUser(ctx context.Context, userID string) ([]entity.Flight, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	var out []entity.Flight
	err := s.flights.View(ctx, func(snapshot []entity.Flight) error {
		for _, f := range snapshot {
			if f.UserID == userID {
				out = append(out, f)
			}
		}
		return nil
	})
	if err != nil {
		s.countError("list")
		return nil, err
	}
	return out, nil
}

func (s *BookingService) countError(operation string) {
	if s.metrics != nil {
		s.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	}
}

// book validates the request against the route table and aircraft set and
// appends a new booked flight to the snapshot. The id comes from the coarse
// clock; an id that is not strictly greater than every existing one is
// rejected as a collision so the caller can retry with a fresh clock read.
func book(snapshot *[]entity.Flight, userID string, req BookingRequest, routes entity.RouteTable, now time.Time) (int64, error) {
	if !routes.Contains(req.From) {
		return 0, fmt.Errorf("%w: unknown route code %q", apperrors.ErrValidation, req.From)
	}
	if !routes.Contains(req.To) {
		return 0, fmt.Errorf("%w: unknown route code %q", apperrors.ErrValidation, req.To)
	}
	if req.From == req.To {
		return 0, fmt.Errorf("%w: from and to are the same airport", apperrors.ErrValidation)
	}
	if !entity.ValidAircraft(req.Aircraft) {
		return 0, fmt.Errorf("%w: unknown aircraft type %q", apperrors.ErrValidation, req.Aircraft)
	}

	id := now.UnixMilli()
	for _, f := range *snapshot {
		if f.ID >= id {
			return 0, fmt.Errorf("%w: flight id %d", apperrors.ErrIDCollision, id)
		}
	}

	*snapshot = append(*snapshot, entity.Flight{
		ID:       id,
		UserID:   userID,
		From:     req.From,
		To:       req.To,
		Aircraft: req.Aircraft,
		Status:   entity.StatusBooked,
	})
	return id, nil
}

// checkIn locates the record matching both flight id and owner. A flight
// owned by someone else reports the same ErrNotFound as an unknown id.
func checkIn(snapshot []entity.Flight, flightID int64, userID string) error {
	for i := range snapshot {
		f := &snapshot[i]
		if f.ID != flightID || f.UserID != userID {
			continue
		}
		if f.Status == entity.StatusCompleted {
			// repeat check-in is idempotent
			return nil
		}
		f.Status = entity.StatusCompleted
		return nil
	}
	return fmt.Errorf("%w: flight %d", apperrors.ErrNotFound, flightID)
}
