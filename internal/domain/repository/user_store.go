package repository

import (
	"context"

	"flightdesk-service/internal/domain/entity"
)

// UserStore provides exclusive commit cycles over the users collection.
type UserStore interface {
	Update(ctx context.Context, fn func(snapshot *[]entity.User) error) error
	View(ctx context.Context, fn func(snapshot []entity.User) error) error
}
