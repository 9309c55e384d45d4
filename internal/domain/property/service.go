package property

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

type Option func(*Service)

func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *Service) {
		if cache != nil && ttl > 0 {
			s.cache = cache
			s.cacheTTL = ttl
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, cache: noopCache{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Get(ctx context.Context, propertyID string) (*Property, error) {
	if cached, ok := s.cache.Get(propertyID); ok {
		return cached, nil
	}

	p, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(propertyID, p, s.cacheTTL)
	return p, nil
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Property, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Address = strings.TrimSpace(input.Address)
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.Address == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if input.MonthlyRent <= 0 {
		return nil, fmt.Errorf("%w: monthly rent must be positive", ErrInvalidInput)
	}
	if input.Charges < 0 {
		return nil, fmt.Errorf("%w: charges cannot be negative", ErrInvalidInput)
	}

	p := Property{
		ID:          uuid.NewString(),
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Address:     input.Address,
		MonthlyRent: input.MonthlyRent,
		Charges:     input.Charges,
		Available:   true,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Property, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) ListAvailable(ctx context.Context) ([]Property, error) {
	return s.repo.ListAvailable(ctx)
}

// Invalidate drops a cached directory entry. Called by the lease issuer
// after it flips availability so stale reads do not outlive the TTL.
func (s *Service) Invalidate(propertyID string) {
	s.cache.Delete(propertyID)
}
