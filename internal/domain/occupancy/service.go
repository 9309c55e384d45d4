package occupancy

import (
	"context"
	"errors"
	"sort"
	"time"

	"rental-app-go/internal/domain/lease"
	"rental-app-go/internal/domain/user"
)

const DefaultMaxOccupants = 5

type Service struct {
	repo         Repository
	notifier     Notifier
	maxOccupants int
	now          func() time.Time
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithMaxOccupants(limit int) Option {
	return func(s *Service) {
		if limit > 1 {
			s.maxOccupants = limit
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		notifier:     noopNotifier{},
		maxOccupants: DefaultMaxOccupants,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the active occupants of a lease with the advisory share
// total. Owners and lease occupants may read; everyone else is refused.
func (s *Service) List(ctx context.Context, actor Actor, leaseID string) (*OccupantList, error) {
	l, err := s.repo.GetLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeRead(ctx, actor, l); err != nil {
		return nil, err
	}

	occupants, err := s.repo.ListActive(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, occupant := range occupants {
		total += occupant.Share
	}
	return &OccupantList{Occupants: occupants, TotalShare: total}, nil
}

func (s *Service) authorizeRead(ctx context.Context, actor Actor, l *lease.Lease) error {
	prop, err := s.repo.GetProperty(ctx, l.PropertyID)
	if err != nil {
		return err
	}
	if prop.OwnerID == actor.ID || l.TenantID == actor.ID {
		return nil
	}

	row, err := s.repo.Get(ctx, l.ID, actor.ID)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrForbidden
	}
	return nil
}

// Add inserts a co-tenant and rebalances every active share in the same
// transaction. Without an explicit share everyone ends at floor(100/N)
// with the remainder on the primary; with one, the newcomer keeps it
// and the rest is split equally among the others.
func (s *Service) Add(ctx context.Context, actor Actor, leaseID string, input AddInput) (*LeaseTenant, error) {
	if input.Share != nil && (*input.Share < 0 || *input.Share > 100) {
		return nil, ErrShareOutOfRange
	}

	var (
		added    LeaseTenant
		theLease *lease.Lease
	)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		l, err := tx.GetLease(ctx, leaseID)
		if err != nil {
			return err
		}
		theLease = l

		prop, err := tx.GetProperty(ctx, l.PropertyID)
		if err != nil {
			return err
		}
		if prop.OwnerID != actor.ID {
			return ErrNotPropertyOwner
		}

		if l.Status != lease.StatusActive {
			return ErrLeaseNotActive
		}

		count, err := tx.CountActive(ctx, leaseID)
		if err != nil {
			return err
		}
		if count >= s.maxOccupants {
			return ErrOccupantLimitReached
		}

		newcomer, err := tx.GetUserByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return ErrNoAccountForEmail
			}
			return err
		}

		existing, err := tx.Get(ctx, leaseID, newcomer.ID)
		if err != nil {
			return err
		}
		if existing != nil && existing.Active() {
			return ErrAlreadyOccupant
		}

		if !newcomer.IsTenant {
			if err := tx.GrantTenantRole(ctx, newcomer.ID); err != nil {
				return err
			}
		}

		added = LeaseTenant{
			LeaseID:   leaseID,
			TenantID:  newcomer.ID,
			IsPrimary: false,
			Share:     0,
			JoinedAt:  s.now(),
		}
		if existing != nil {
			// A departed occupant coming back reuses its row; the
			// join date restarts so visibility begins at the rejoin.
			if err := tx.Rejoin(ctx, leaseID, newcomer.ID, added.JoinedAt); err != nil {
				return err
			}
		} else if err := tx.Create(ctx, &added); err != nil {
			return err
		}

		return s.rebalance(ctx, tx, leaseID, &added, input.Share)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.OccupantAdded(ctx, theLease, added.TenantID, added.Share)
	return &added, nil
}

func (s *Service) rebalance(ctx context.Context, tx Repository, leaseID string, newcomer *LeaseTenant, explicit *int) error {
	occupants, err := tx.ListActive(ctx, leaseID)
	if err != nil {
		return err
	}

	n := len(occupants)
	if n == 0 {
		return ErrOccupantNotFound
	}

	newcomerShare := 100 / n
	otherShare := 100 / n
	if explicit != nil {
		newcomerShare = *explicit
		if n > 1 {
			otherShare = (100 - newcomerShare) / (n - 1)
		}
	}

	// Integer division leaves a remainder; the primary absorbs it so
	// the advisory total stays at 100 after an equal split.
	remainder := 100 - newcomerShare - otherShare*(n-1)

	for _, occupant := range occupants {
		share := otherShare
		if occupant.TenantID == newcomer.TenantID {
			share = newcomerShare
		} else if occupant.IsPrimary {
			share = otherShare + remainder
		}
		if err := tx.UpdateShare(ctx, leaseID, occupant.TenantID, share); err != nil {
			return err
		}
		if occupant.TenantID == newcomer.TenantID {
			newcomer.Share = share
		}
	}

	return nil
}

// Update changes an occupant's share and/or promotes it to primary.
// Promotion clears every other primary flag in the same transaction so
// exactly one active primary exists at any instant.
func (s *Service) Update(ctx context.Context, actor Actor, leaseID, tenantID string, input UpdateInput) (*LeaseTenant, error) {
	if input.Share != nil && (*input.Share < 0 || *input.Share > 100) {
		return nil, ErrShareOutOfRange
	}
	if input.IsPrimary != nil && !*input.IsPrimary {
		return nil, ErrCannotUnsetPrimary
	}

	var updated LeaseTenant
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		l, err := tx.GetLease(ctx, leaseID)
		if err != nil {
			return err
		}
		prop, err := tx.GetProperty(ctx, l.PropertyID)
		if err != nil {
			return err
		}
		if prop.OwnerID != actor.ID {
			return ErrNotPropertyOwner
		}

		row, err := tx.Get(ctx, leaseID, tenantID)
		if err != nil {
			return err
		}
		if row == nil || !row.Active() {
			return ErrOccupantNotFound
		}
		updated = *row

		if input.Share != nil {
			if err := tx.UpdateShare(ctx, leaseID, tenantID, *input.Share); err != nil {
				return err
			}
			updated.Share = *input.Share
		}

		if input.IsPrimary != nil && *input.IsPrimary && !row.IsPrimary {
			if err := tx.ClearPrimaries(ctx, leaseID); err != nil {
				return err
			}
			if err := tx.SetPrimary(ctx, leaseID, tenantID); err != nil {
				return err
			}
			updated.IsPrimary = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Remove departs an occupant (soft delete). At least two occupants must
// be active beforehand; ending the lease is the path for the last one.
// A departing primary hands the flag to the earliest-joined survivor.
func (s *Service) Remove(ctx context.Context, actor Actor, leaseID, tenantID string) error {
	var theLease *lease.Lease
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		l, err := tx.GetLease(ctx, leaseID)
		if err != nil {
			return err
		}
		theLease = l

		prop, err := tx.GetProperty(ctx, l.PropertyID)
		if err != nil {
			return err
		}
		if prop.OwnerID != actor.ID {
			return ErrNotPropertyOwner
		}

		row, err := tx.Get(ctx, leaseID, tenantID)
		if err != nil {
			return err
		}
		if row == nil || !row.Active() {
			return ErrOccupantNotFound
		}

		count, err := tx.CountActive(ctx, leaseID)
		if err != nil {
			return err
		}
		if count < 2 {
			return ErrLastOccupant
		}

		if err := tx.Depart(ctx, leaseID, tenantID, s.now()); err != nil {
			return err
		}

		if row.IsPrimary {
			remaining, err := tx.ListActive(ctx, leaseID)
			if err != nil {
				return err
			}
			if len(remaining) == 0 {
				return ErrOccupantNotFound
			}
			sort.SliceStable(remaining, func(i, j int) bool {
				return remaining[i].JoinedAt.Before(remaining[j].JoinedAt)
			})
			if err := tx.SetPrimary(ctx, leaseID, remaining[0].TenantID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.OccupantRemoved(ctx, theLease, tenantID)
	return nil
}
