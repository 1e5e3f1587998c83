package service

import (
	"context"
	"errors"

	"github.com/vicbrooke/cyber-kittens/internal/domain"
	"github.com/vicbrooke/cyber-kittens/internal/repository"
)

var (
	// ErrKittenNotFound is returned when the requested kitten does not exist.
	ErrKittenNotFound = errors.New("kitten not found")
	// ErrNotOwner is returned when the caller is not the kitten's owner.
	ErrNotOwner = errors.New("not the owner")
)

// KittenService coordinates kitten operations and enforces ownership: only
// the owner may read or delete a record. Ownership checks run before any
// data is returned or mutated.
type KittenService interface {
	Create(ctx context.Context, ownerID int64, name string, age int, color string) (*domain.Kitten, error)
	Get(ctx context.Context, id, callerID int64) (*domain.Kitten, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Kitten, error)
	Delete(ctx context.Context, id, callerID int64) error
}

type kittenService struct {
	kittens repository.KittenRepository
}

func NewKittenService(kittens repository.KittenRepository) KittenService {
	return &kittenService{kittens: kittens}
}

func (s *kittenService) Create(ctx context.Context, ownerID int64, name string, age int, color string) (*domain.Kitten, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	if color == "" {
		return nil, errors.New("color is required")
	}
	if age < 0 {
		return nil, errors.New("age must not be negative")
	}

	kitten := &domain.Kitten{
		Name:    name,
		Age:     age,
		Color:   color,
		OwnerID: ownerID,
	}
	if _, err := s.kittens.Create(ctx, kitten); err != nil {
		return nil, err
	}
	return kitten, nil
}

func (s *kittenService) Get(ctx context.Context, id, callerID int64) (*domain.Kitten, error) {
	kitten, err := s.kittens.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrKittenNotFound
		}
		return nil, err
	}
	if kitten.OwnerID != callerID {
		return nil, ErrNotOwner
	}
	return kitten, nil
}

func (s *kittenService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Kitten, error) {
	return s.kittens.ListByOwner(ctx, ownerID)
}

func (s *kittenService) Delete(ctx context.Context, id, callerID int64) error {
	// ownership check precedes the delete
	if _, err := s.Get(ctx, id, callerID); err != nil {
		return err
	}
	return s.kittens.Delete(ctx, id)
}
