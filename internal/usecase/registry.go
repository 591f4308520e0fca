package usecase

import (
	"context"

	"flightdesk-service/internal/domain/apperrors"
	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/domain/repository"
	"flightdesk-service/pkg/logger"
	"flightdesk-service/pkg/metrics"
)

// RegistryService handles user registration keyed by external identity id
type RegistryService struct {
	users   repository.UserStore
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewRegistryService creates a new registry service
func NewRegistryService(users repository.UserStore, log logger.Logger, m *metrics.Metrics) *RegistryService {
	return &RegistryService{
		users:   users,
		logger:  log,
		metrics: m,
	}
}

// EnsureRegistered creates a user record for the identity if none exists.
// Registration is create-once: an existing record is never updated, so a
// username change on the provider side is not reflected. Reports whether
// a new record was created.
func (s *RegistryService) EnsureRegistered(ctx context.Context, identity entity.Identity) (bool, error) {
	if identity.ID == "" {
		return false, apperrors.ErrUnauthenticated
	}

	var created bool
	err := s.users.Update(ctx, func(snapshot *[]entity.User) error {
		created = ensureRegistered(snapshot, identity)
		return nil
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.ErrorsCount.WithLabelValues("register").Inc()
		}
		return false, err
	}

	if created {
		if s.metrics != nil {
			s.metrics.UsersRegistered.Inc()
		}
		s.logger.Info("User registered", "userId", identity.ID, "username", identity.Username)
	} else {
		s.logger.Debug("User already registered", "userId", identity.ID)
	}
	return created, nil
}

// ensureRegistered appends the identity as a new user unless a record with
// that id already exists.
func ensureRegistered(snapshot *[]entity.User, identity entity.Identity) bool {
	for _, u := range *snapshot {
		if u.ID == identity.ID {
			return false
		}
	}
	*snapshot = append(*snapshot, entity.User{
		ID:       identity.ID,
		Username: identity.Username,
		Flights:  []int64{},
	})
	return true
}
