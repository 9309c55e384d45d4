package receipt

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"rental-app-go/internal/domain/lease"
	"rental-app-go/internal/domain/occupancy"
	"rental-app-go/internal/domain/property"
)

const (
	leaseID1    = "11111111-1111-1111-1111-111111111111"
	propertyID1 = "22222222-2222-2222-2222-222222222222"
	ownerID1    = "33333333-3333-3333-3333-333333333333"
	primaryID   = "44444444-4444-4444-4444-444444444444"
	cotenantID  = "55555555-5555-5555-5555-555555555555"
)

type fakeReceiptRepo struct {
	leases     map[string]*lease.Lease
	properties map[string]*property.Property
	occupants  []occupancy.LeaseTenant
	receipts   map[string]*Receipt
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{
		leases:     make(map[string]*lease.Lease),
		properties: make(map[string]*property.Property),
		receipts:   make(map[string]*Receipt),
	}
}

func (r *fakeReceiptRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeReceiptRepo) GetLease(ctx context.Context, leaseID string) (*lease.Lease, error) {
	l, ok := r.leases[leaseID]
	if !ok {
		return nil, lease.ErrLeaseNotFound
	}
	copied := *l
	return &copied, nil
}

func (r *fakeReceiptRepo) GetProperty(ctx context.Context, propertyID string) (*property.Property, error) {
	p, ok := r.properties[propertyID]
	if !ok {
		return nil, property.ErrPropertyNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeReceiptRepo) GetOccupant(ctx context.Context, leaseID, tenantID string) (*occupancy.LeaseTenant, error) {
	for i := range r.occupants {
		if r.occupants[i].LeaseID == leaseID && r.occupants[i].TenantID == tenantID {
			copied := r.occupants[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeReceiptRepo) GetByID(ctx context.Context, receiptID string) (*Receipt, error) {
	rec, ok := r.receipts[receiptID]
	if !ok {
		return nil, ErrReceiptNotFound
	}
	copied := *rec
	return &copied, nil
}

func (r *fakeReceiptRepo) Exists(ctx context.Context, leaseID string, month, year int) (bool, error) {
	for _, rec := range r.receipts {
		if rec.LeaseID == leaseID && rec.Month == month && rec.Year == year {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReceiptRepo) Create(ctx context.Context, rec *Receipt) error {
	copied := *rec
	r.receipts[rec.ID] = &copied
	return nil
}

func (r *fakeReceiptRepo) Confirm(ctx context.Context, receiptID string, paidAt time.Time) error {
	rec, ok := r.receipts[receiptID]
	if !ok {
		return ErrReceiptNotFound
	}
	rec.Status = StatusConfirmed
	at := paidAt
	rec.PaidAt = &at
	return nil
}

func (r *fakeReceiptRepo) ListByLease(ctx context.Context, leaseID string) ([]Receipt, error) {
	var items []Receipt
	for _, rec := range r.receipts {
		if rec.LeaseID == leaseID {
			items = append(items, *rec)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return periodIndex(items[i].Year, items[i].Month) < periodIndex(items[j].Year, items[j].Month)
	})
	return items, nil
}

func seedActiveLease(repo *fakeReceiptRepo) {
	repo.properties[propertyID1] = &property.Property{ID: propertyID1, OwnerID: ownerID1}
	repo.leases[leaseID1] = &lease.Lease{
		ID: leaseID1, PropertyID: propertyID1, TenantID: primaryID,
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		MonthlyRent: 800, Charges: 50,
		Status: lease.StatusActive,
	}
	repo.occupants = []occupancy.LeaseTenant{{
		LeaseID: leaseID1, TenantID: primaryID, IsPrimary: true, Share: 100,
		JoinedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
}

func primaryActor() Actor {
	return Actor{ID: primaryID, IsTenant: true}
}

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

func TestDeclareByPrimaryTenant(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := newFakeReceiptRepo()
	seedActiveLease(repo)
	svc := NewService(repo, fixedClock(now))

	created, err := svc.Declare(context.Background(), primaryActor(), PeriodInput{LeaseID: leaseID1, Month: 2, Year: 2026})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Status != StatusDeclared {
		t.Fatalf("expected DECLARED, got %s", created.Status)
	}
	if created.TotalAmount != 850 {
		t.Fatalf("expected rent plus charges, got %v", created.TotalAmount)
	}
	if created.PaidAt != nil {
		t.Fatalf("declared receipt must not carry a payment timestamp")
	}
}

func TestDeclareByActiveCoOccupant(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := newFakeReceiptRepo()
	seedActiveLease(repo)
	repo.occupants = append(repo.occupants, occupancy.LeaseTenant{
		LeaseID: leaseID1, TenantID: cotenantID, Share: 50,
		JoinedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	svc := NewService(repo, fixedClock(now))

	_, err := svc.Declare(context.Background(), Actor{ID: cotenantID, IsTenant: true}, PeriodInput{LeaseID: leaseID1, Month: 3, Year: 2026})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestDeclareByStrangerRejected(t *testing.T) {
	repo := newFakeReceiptRepo()
	seedActiveLease(repo)
	svc := NewService(repo)

	_, err := svc.Declare(context.Background(), Actor{ID: "stranger", IsTenant: true}, PeriodInput{LeaseID: leaseID1, Month: 2, Year: 2026})
	if !errors.Is(err, ErrNotOccupant) {
		t.Fatalf("expected ErrNotOccupant, got %v", err)
	}
}

func TestDeclareRequiresTenantRole(t *testing.T) {
	repo := newFakeReceiptRepo()
	seedActiveLease(repo)
	svc := NewService(repo)

	_, err := svc.Declare(context.Background(), Actor{ID: primaryID, IsOwner: true}, PeriodInput{LeaseID: leaseID1, Month: 2, Year: 2026})
	if !errors.Is(err, ErrTenantRoleRequired) {
		t.Fatalf("expected ErrTenantRoleRequired, got %v", err)
	}
}

func TestDeclareOnInactiveLease(t *testing.T) {
	repo := newFakeReceiptRepo()
	seedActiveLease(repo)
	repo.leases[leaseID1].Status = lease.StatusPending
	svc := NewService(repo)

	_, err := svc.Declare(context.Background(), primaryActor(), PeriodInput{LeaseID: leaseID1, Month: 2, Year: 2026})
	if !errors.Is(err, ErrLeaseNotActive) {
		t.Fatalf("expected ErrLeaseNotActive, got %v", err)
	}
}

func TestDeclarePeriodBounds(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := newFakeReceiptRepo()
	seedActiveLease(repo)
	svc := NewService(repo, fixedClock(now))

	// Before the lease started.
	_, err := svc.Declare(context.Background(), primaryActor(), PeriodInput{LeaseID: leaseID1, Month: 12, Year: 2025})
	if !errors.Is(err, ErrMonthOutOfRange) {
		t.Fatalf("expected ErrMonthOutOfRange for pre-start period, got %v", err)
	}

	// After the current month.
	_, err = svc.Declare(context.Background(), primaryActor(), PeriodInput{LeaseID: leaseID1, Month: 4, Year: 2026})
	if !errors.Is(err, ErrMonthOutOfRange) {
		t.Fatalf("expected ErrMonthOutOfRange for future period, got %v", err)
	}

	// Nonsense month.
	_, err = svc.Declare(context.Background(), primaryActor(), PeriodInput{LeaseID: leaseID1, Month: 13, Year: 2026})
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}

	// The current month itself is declarable.
	if _, err := svc.Declare(context.Background(), primaryActor(), PeriodInput{LeaseID: leaseID1, Month: 3, Year: 2026}); err != nil {
		t.Fatalf("expected current month accepted, got %v", err)
	}
}

func TestDeclareDuplicatePeriod(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := newFakeReceiptRepo()
	seedActiveLease(repo)
	svc := NewService(repo, fixedClock(now))

	if _, err := svc.Declare(context.Background(), primaryActor(), PeriodInput{LeaseID: leaseID1, Month: 2, Year: 2026}); err != nil {
		t.Fatalf("first declaration: %v", err)
	}
	_, err := svc.Declare(context.Background(), primaryActor(), PeriodInput{LeaseID: leaseID1, Month: 2, Year: 2026})
	if !errors.Is(err, ErrReceiptExists) {
		t.Fatalf("expected ErrReceiptExists, got %v", err)
	}
}

func TestConfirmByOwner(t *testing.T) {
	now := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	repo := newFakeReceiptRepo()
	seedActiveLease(repo)
	repo.receipts["r1"] = &Receipt{
		ID: "r1", LeaseID: leaseID1, Month: 2, Year: 2026,
		RentAmount: 800, Charges: 50, TotalAmount: 850,
		Status: StatusDeclared, DeclaredAt: now.Add(-48 * time.Hour),
	}
	svc := NewService(repo, fixedClock(now))

	confirmed, err := svc.Confirm(context.Background(), Actor{ID: ownerID1, IsOwner: true}, "r1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if confirmed.Status != StatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", confirmed.Status)
	}
	if confirmed.PaidAt == nil || !confirmed.PaidAt.Equal(now) {
		t.Fatalf("expected paid at confirmation time, got %v", confirmed.PaidAt)
	}
	if repo.receipts["r1"].Status != StatusConfirmed {
		t.Fatalf("confirmation not persisted")
	}
}

func TestConfirmByNonOwnerRejected(t *testing.T) {
	repo := newFakeReceiptRepo()
	seedActiveLease(repo)
	repo.receipts["r1"] = &Receipt{ID: "r1", LeaseID: leaseID1, Month: 2, Year: 2026, Status: StatusDeclared}
	svc := NewService(repo)

	_, err := svc.Confirm(context.Background(), primaryActor(), "r1")
	if !errors.Is(err, ErrNotPropertyOwner) {
		t.Fatalf("expected ErrNotPropertyOwner, got %v", err)
	}
}

func TestConfirmTwiceRejected(t *testing.T) {
	repo := newFakeReceiptRepo()
	seedActiveLease(repo)
	paid := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	repo.receipts["r1"] = &Receipt{ID: "r1", LeaseID: leaseID1, Month: 2, Year: 2026, Status: StatusConfirmed, PaidAt: &paid}
	svc := NewService(repo)

	_, err := svc.Confirm(context.Background(), Actor{ID: ownerID1, IsOwner: true}, "r1")
	if !errors.Is(err, ErrAlreadyConfirmed) {
		t.Fatalf("expected ErrAlreadyConfirmed, got %v", err)
	}
}

func TestOwnerDeclareConfirmOneStep(t *testing.T) {
	now := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	repo := newFakeReceiptRepo()
	seedActiveLease(repo)
	svc := NewService(repo, fixedClock(now))

	created, err := svc.OwnerDeclareConfirm(context.Background(), Actor{ID: ownerID1, IsOwner: true}, PeriodInput{LeaseID: leaseID1, Month: 2, Year: 2026})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Status != StatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", created.Status)
	}
	if created.PaidAt == nil || !created.PaidAt.Equal(created.DeclaredAt) {
		t.Fatalf("expected paid at declaration time, got %v", created.PaidAt)
	}
}

func TestListVisibilityCutoffForCoTenant(t *testing.T) {
	repo := newFakeReceiptRepo()
	seedActiveLease(repo)
	// Receipts for January, February and March.
	for month := 1; month <= 3; month++ {
		id := string(rune('a' + month))
		repo.receipts[id] = &Receipt{ID: id, LeaseID: leaseID1, Month: month, Year: 2026, Status: StatusConfirmed}
	}
	// Co-tenant joined mid-February: January is out of sight, the join
	// month itself is visible.
	repo.occupants = append(repo.occupants, occupancy.LeaseTenant{
		LeaseID: leaseID1, TenantID: cotenantID, Share: 50,
		JoinedAt: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
	})
	svc := NewService(repo)

	visible, err := svc.List(context.Background(), Actor{ID: cotenantID, IsTenant: true}, leaseID1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible receipts, got %d", len(visible))
	}
	for _, rec := range visible {
		if rec.Month < 2 {
			t.Fatalf("expected pre-join receipt hidden, saw month %d", rec.Month)
		}
	}
}

func TestListFullHistoryForPrimaryAndOwner(t *testing.T) {
	repo := newFakeReceiptRepo()
	seedActiveLease(repo)
	for month := 1; month <= 3; month++ {
		id := string(rune('a' + month))
		repo.receipts[id] = &Receipt{ID: id, LeaseID: leaseID1, Month: month, Year: 2026, Status: StatusConfirmed}
	}
	svc := NewService(repo)

	forPrimary, err := svc.List(context.Background(), primaryActor(), leaseID1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(forPrimary) != 3 {
		t.Fatalf("expected full history for primary, got %d", len(forPrimary))
	}

	forOwner, err := svc.List(context.Background(), Actor{ID: ownerID1, IsOwner: true}, leaseID1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(forOwner) != 3 {
		t.Fatalf("expected full history for owner, got %d", len(forOwner))
	}
}

func TestListRejectsStranger(t *testing.T) {
	repo := newFakeReceiptRepo()
	seedActiveLease(repo)
	svc := NewService(repo)

	_, err := svc.List(context.Background(), Actor{ID: "stranger", IsTenant: true}, leaseID1)
	if !errors.Is(err, ErrNotOccupant) {
		t.Fatalf("expected ErrNotOccupant, got %v", err)
	}
}
