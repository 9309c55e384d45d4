package receipt

import (
	"context"
	"time"

	"github.com/google/uuid"
	"rental-app-go/internal/domain/lease"
	"rental-app-go/internal/domain/property"
)

type Service struct {
	repo     Repository
	notifier Notifier
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

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, notifier: noopNotifier{}, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Declare creates a DECLARED receipt for a period the tenant claims to
// have paid. The owner's confirmation completes the protocol.
func (s *Service) Declare(ctx context.Context, actor Actor, input PeriodInput) (*Receipt, error) {
	if !actor.IsTenant {
		return nil, ErrTenantRoleRequired
	}

	var (
		created Receipt
		ownerID string
	)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		l, prop, err := s.leaseAndProperty(ctx, tx, input.LeaseID)
		if err != nil {
			return err
		}
		ownerID = prop.OwnerID

		if err := s.authorizeDeclarer(ctx, tx, l, actor.ID); err != nil {
			return err
		}
		if l.Status != lease.StatusActive {
			return ErrLeaseNotActive
		}

		if err := s.checkPeriod(l, input); err != nil {
			return err
		}
		if err := s.checkUnique(ctx, tx, input); err != nil {
			return err
		}

		created = s.buildReceipt(l, input, StatusDeclared)
		return tx.Create(ctx, &created)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.PaymentDeclared(ctx, &created, ownerID)
	return &created, nil
}

// Confirm is the owner's second step: a DECLARED receipt becomes
// CONFIRMED and gets its payment timestamp.
func (s *Service) Confirm(ctx context.Context, actor Actor, receiptID string) (*Receipt, error) {
	var (
		confirmed Receipt
		tenantID  string
	)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		r, err := tx.GetByID(ctx, receiptID)
		if err != nil {
			return err
		}

		l, prop, err := s.leaseAndProperty(ctx, tx, r.LeaseID)
		if err != nil {
			return err
		}
		if prop.OwnerID != actor.ID {
			return ErrNotPropertyOwner
		}
		tenantID = l.TenantID

		if r.Status == StatusConfirmed {
			return ErrAlreadyConfirmed
		}

		paidAt := s.now()
		if err := tx.Confirm(ctx, receiptID, paidAt); err != nil {
			return err
		}

		confirmed = *r
		confirmed.Status = StatusConfirmed
		confirmed.PaidAt = &paidAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.PaymentConfirmed(ctx, &confirmed, tenantID)
	return &confirmed, nil
}

// OwnerDeclareConfirm is the one-step variant for cash or manual
// bookkeeping: the owner creates an already-confirmed receipt.
func (s *Service) OwnerDeclareConfirm(ctx context.Context, actor Actor, input PeriodInput) (*Receipt, error) {
	var (
		created  Receipt
		tenantID string
	)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		l, prop, err := s.leaseAndProperty(ctx, tx, input.LeaseID)
		if err != nil {
			return err
		}
		if prop.OwnerID != actor.ID {
			return ErrNotPropertyOwner
		}
		tenantID = l.TenantID

		if err := s.checkPeriod(l, input); err != nil {
			return err
		}
		if err := s.checkUnique(ctx, tx, input); err != nil {
			return err
		}

		created = s.buildReceipt(l, input, StatusConfirmed)
		paidAt := created.DeclaredAt
		created.PaidAt = &paidAt
		return tx.Create(ctx, &created)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.PaymentConfirmed(ctx, &created, tenantID)
	return &created, nil
}

// List returns a lease's receipts with the co-tenant visibility filter:
// a non-primary occupant never sees periods predating its join month.
// The primary tenant and legacy direct tenants see the full history.
func (s *Service) List(ctx context.Context, actor Actor, leaseID string) ([]Receipt, error) {
	l, prop, err := s.leaseAndProperty(ctx, s.repo, leaseID)
	if err != nil {
		return nil, err
	}

	cutoff := time.Time{}
	switch {
	case prop.OwnerID == actor.ID:
		// full history
	case l.TenantID == actor.ID:
		// primary (or legacy direct) tenant, full history
	default:
		row, err := s.repo.GetOccupant(ctx, leaseID, actor.ID)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, ErrNotOccupant
		}
		if !row.IsPrimary {
			cutoff = row.JoinedAt
		}
	}

	receipts, err := s.repo.ListByLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if cutoff.IsZero() {
		return receipts, nil
	}

	cutoffIndex := periodIndex(cutoff.Year(), int(cutoff.Month()))
	visible := make([]Receipt, 0, len(receipts))
	for _, r := range receipts {
		if periodIndex(r.Year, r.Month) >= cutoffIndex {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

func (s *Service) leaseAndProperty(ctx context.Context, tx Repository, leaseID string) (*lease.Lease, *property.Property, error) {
	l, err := tx.GetLease(ctx, leaseID)
	if err != nil {
		return nil, nil, err
	}
	prop, err := tx.GetProperty(ctx, l.PropertyID)
	if err != nil {
		return nil, nil, err
	}
	return l, prop, nil
}

func (s *Service) authorizeDeclarer(ctx context.Context, tx Repository, l *lease.Lease, tenantID string) error {
	if l.TenantID == tenantID {
		return nil
	}
	row, err := tx.GetOccupant(ctx, l.ID, tenantID)
	if err != nil {
		return err
	}
	if row == nil || !row.Active() {
		return ErrNotOccupant
	}
	return nil
}

func (s *Service) checkPeriod(l *lease.Lease, input PeriodInput) error {
	if input.Month < 1 || input.Month > 12 || input.Year < 1970 {
		return ErrInvalidPeriod
	}

	now := s.now()
	period := periodIndex(input.Year, input.Month)
	if period < periodIndex(l.StartDate.Year(), int(l.StartDate.Month())) {
		return ErrMonthOutOfRange
	}
	if period > periodIndex(now.Year(), int(now.Month())) {
		return ErrMonthOutOfRange
	}
	return nil
}

func (s *Service) checkUnique(ctx context.Context, tx Repository, input PeriodInput) error {
	exists, err := tx.Exists(ctx, input.LeaseID, input.Month, input.Year)
	if err != nil {
		return err
	}
	if exists {
		return ErrReceiptExists
	}
	return nil
}

func (s *Service) buildReceipt(l *lease.Lease, input PeriodInput, status Status) Receipt {
	return Receipt{
		ID:          uuid.NewString(),
		LeaseID:     l.ID,
		Month:       input.Month,
		Year:        input.Year,
		RentAmount:  l.MonthlyRent,
		Charges:     l.Charges,
		TotalAmount: l.MonthlyRent + l.Charges,
		Status:      status,
		DeclaredAt:  s.now(),
	}
}

// periodIndex linearizes (year, month) so periods compare with one
// integer comparison.
func periodIndex(year, month int) int {
	return year*12 + month
}
