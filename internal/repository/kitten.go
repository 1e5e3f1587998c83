package repository

import (
	"context"

	"github.com/vicbrooke/cyber-kittens/internal/domain"
)

// KittenRepository exposes persistence operations for Kitten records.
type KittenRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, kitten *domain.Kitten) (int64, error)
	// Get resolves the owner's username via the kitten-to-user relationship.
	Get(ctx context.Context, id int64) (*domain.Kitten, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Kitten, error)
	Delete(ctx context.Context, id int64) error
}
