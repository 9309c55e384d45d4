package lease

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"rental-app-go/internal/domain/application"
)

const DefaultBackfillPaidDay = 5

type Service struct {
	repo     Repository
	notifier Notifier
	paidDay  int
	now      func() time.Time
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithBackfillPaidDay(day int) Option {
	return func(s *Service) {
		if day >= 1 && day <= 28 {
			s.paidDay = day
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
		repo:     repo,
		notifier: noopNotifier{},
		paidDay:  DefaultBackfillPaidDay,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create converts an accepted application into a lease. A start date in
// the past makes the lease retroactive: it is born ACTIVE and every
// elapsed month gets a confirmed receipt. The lease, its primary
// occupancy row, the property flags and the backfill commit atomically.
func (s *Service) Create(ctx context.Context, actor Actor, input CreateInput) (*IssueResult, error) {
	if input.RentAmount <= 0 {
		return nil, fmt.Errorf("%w: rent amount must be positive", ErrInvalidInput)
	}
	deposit := input.RentAmount
	if input.DepositAmount != nil {
		if *input.DepositAmount < 0 {
			return nil, fmt.Errorf("%w: deposit cannot be negative", ErrInvalidInput)
		}
		deposit = *input.DepositAmount
	}

	startDate := truncateToDay(input.StartDate)
	if input.EndDate != nil && !input.EndDate.After(startDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrInvalidInput)
	}

	today := truncateToDay(s.now())
	retroactive := startDate.Before(today)

	var (
		created   Lease
		ownerID   string
		generated int
	)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		app, err := tx.GetApplication(ctx, input.ApplicationID)
		if err != nil {
			return err
		}

		prop, err := tx.GetProperty(ctx, app.PropertyID)
		if err != nil {
			return err
		}
		if prop.OwnerID != actor.ID {
			return ErrNotPropertyOwner
		}
		ownerID = prop.OwnerID

		if app.Status != application.StatusAccepted {
			return ErrApplicationNotAccepted
		}

		live, err := tx.HasLiveLease(ctx, app.PropertyID, app.TenantID)
		if err != nil {
			return err
		}
		if live {
			return ErrLeaseExists
		}

		status := StatusPending
		if retroactive {
			status = StatusActive
		}

		created = Lease{
			ID:          uuid.NewString(),
			PropertyID:  app.PropertyID,
			TenantID:    app.TenantID,
			StartDate:   startDate,
			EndDate:     input.EndDate,
			MonthlyRent: input.RentAmount,
			Deposit:     deposit,
			Charges:     prop.Charges,
			Status:      status,
		}
		if err := tx.Create(ctx, &created); err != nil {
			return err
		}

		if err := tx.CreatePrimaryOccupant(ctx, created.ID, created.TenantID, startDate); err != nil {
			return err
		}

		if err := tx.SetPropertyOccupied(ctx, created.PropertyID, created.TenantID); err != nil {
			return err
		}

		if retroactive {
			receipts := s.backfillReceipts(&created, today)
			if err := tx.CreateReceipts(ctx, receipts); err != nil {
				return err
			}
			generated = len(receipts)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.LeaseIssued(ctx, &created, ownerID)
	if retroactive {
		s.notifier.RetroactiveWelcome(ctx, &created, generated)
	}

	return &IssueResult{Lease: &created, ReceiptsGenerated: generated, IsRetroactive: retroactive}, nil
}

// backfillReceipts materializes one confirmed receipt per calendar
// month from the start month through the current month inclusive,
// before anything is written.
func (s *Service) backfillReceipts(l *Lease, today time.Time) []BackfillReceipt {
	receipts := make([]BackfillReceipt, 0, 12)

	year, month := l.StartDate.Year(), l.StartDate.Month()
	lastYear, lastMonth := today.Year(), today.Month()

	for year < lastYear || (year == lastYear && month <= lastMonth) {
		paidAt := time.Date(year, month, s.paidDay, 0, 0, 0, 0, time.UTC)
		receipts = append(receipts, BackfillReceipt{
			LeaseID:     l.ID,
			Month:       int(month),
			Year:        year,
			RentAmount:  l.MonthlyRent,
			Charges:     l.Charges,
			TotalAmount: l.MonthlyRent + l.Charges,
			PaidAt:      paidAt,
		})

		month++
		if month > time.December {
			month = time.January
			year++
		}
	}

	return receipts
}

// Activate moves a PENDING lease to ACTIVE. The move-in inventory
// confirmation gates the transition.
func (s *Service) Activate(ctx context.Context, actor Actor, leaseID string) (*Lease, error) {
	return s.transition(ctx, actor, leaseID, StatusActive, InventoryMoveIn, ErrMoveInInventoryRequired)
}

// End moves an ACTIVE lease to ENDED, departs the remaining occupants
// and returns the property to the available pool. The move-out
// inventory confirmation gates the transition.
func (s *Service) End(ctx context.Context, actor Actor, leaseID string) (*Lease, error) {
	return s.transition(ctx, actor, leaseID, StatusEnded, InventoryMoveOut, ErrMoveOutInventoryRequired)
}

func (s *Service) transition(ctx context.Context, actor Actor, leaseID string, next Status, gate InventoryKind, gateErr error) (*Lease, error) {
	var (
		updated Lease
		ownerID string
	)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		l, err := tx.GetByID(ctx, leaseID)
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
		ownerID = prop.OwnerID

		if !l.Status.canTransition(next) {
			return ErrInvalidTransition
		}

		recorded, err := tx.HasInventoryRecord(ctx, leaseID, gate)
		if err != nil {
			return err
		}
		if !recorded {
			return gateErr
		}

		now := s.now()
		updated = *l
		updated.Status = next

		var endDate *time.Time
		if next == StatusEnded {
			ended := truncateToDay(now)
			endDate = &ended
			updated.EndDate = endDate

			if err := tx.DepartActiveOccupants(ctx, leaseID, now); err != nil {
				return err
			}
			if err := tx.SetPropertyVacant(ctx, l.PropertyID); err != nil {
				return err
			}
		}

		return tx.UpdateStatus(ctx, leaseID, next, endDate)
	})
	if err != nil {
		return nil, err
	}

	if next == StatusEnded {
		s.notifier.LeaseEnded(ctx, &updated, ownerID)
	}
	return &updated, nil
}

// RecordInventory stores an owner's walkthrough confirmation. It is
// idempotent from the gates' perspective: any record of the right kind
// opens the corresponding transition.
func (s *Service) RecordInventory(ctx context.Context, actor Actor, leaseID string, kind InventoryKind) (*InventoryRecord, error) {
	if kind != InventoryMoveIn && kind != InventoryMoveOut {
		return nil, fmt.Errorf("%w: unknown inventory kind %q", ErrInvalidInput, kind)
	}

	l, err := s.repo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	prop, err := s.repo.GetProperty(ctx, l.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop.OwnerID != actor.ID {
		return nil, ErrNotPropertyOwner
	}

	record := InventoryRecord{
		ID:         uuid.NewString(),
		LeaseID:    leaseID,
		Kind:       kind,
		RecordedBy: actor.ID,
		RecordedAt: s.now(),
	}
	if err := s.repo.CreateInventoryRecord(ctx, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Service) Get(ctx context.Context, leaseID string) (*Lease, error) {
	return s.repo.GetByID(ctx, leaseID)
}

// List is role-scoped: owners see leases on their properties, tenants
// see leases they occupy.
func (s *Service) List(ctx context.Context, actor Actor, asOwner bool) ([]Lease, error) {
	if asOwner {
		if !actor.IsOwner {
			return nil, ErrOwnerRoleRequired
		}
		return s.repo.ListByOwner(ctx, actor.ID)
	}
	return s.repo.ListByTenant(ctx, actor.ID)
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
