package user

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// UpsertIdentity records the identity the auth layer resolved. Role flags
// only widen here; revocation is an admin concern outside this service.
func (s *Service) UpsertIdentity(ctx context.Context, id, email, name string, isOwner, isTenant bool) error {
	u := User{
		ID:       id,
		Email:    strings.ToLower(strings.TrimSpace(email)),
		IsOwner:  isOwner,
		IsTenant: isTenant,
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		u.Name = &trimmed
	}
	return s.repo.Upsert(ctx, &u)
}
