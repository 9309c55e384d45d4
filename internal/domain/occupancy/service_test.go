package occupancy

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"rental-app-go/internal/domain/lease"
	"rental-app-go/internal/domain/property"
	"rental-app-go/internal/domain/user"
)

const (
	leaseID1    = "11111111-1111-1111-1111-111111111111"
	propertyID1 = "22222222-2222-2222-2222-222222222222"
	ownerID1    = "33333333-3333-3333-3333-333333333333"
	primaryID   = "44444444-4444-4444-4444-444444444444"
)

type fakeOccupancyRepo struct {
	leases     map[string]*lease.Lease
	properties map[string]*property.Property
	users      map[string]*user.User
	rows       []LeaseTenant
}

func newFakeOccupancyRepo() *fakeOccupancyRepo {
	return &fakeOccupancyRepo{
		leases:     make(map[string]*lease.Lease),
		properties: make(map[string]*property.Property),
		users:      make(map[string]*user.User),
	}
}

func (r *fakeOccupancyRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeOccupancyRepo) GetLease(ctx context.Context, leaseID string) (*lease.Lease, error) {
	l, ok := r.leases[leaseID]
	if !ok {
		return nil, lease.ErrLeaseNotFound
	}
	copied := *l
	return &copied, nil
}

func (r *fakeOccupancyRepo) GetProperty(ctx context.Context, propertyID string) (*property.Property, error) {
	p, ok := r.properties[propertyID]
	if !ok {
		return nil, property.ErrPropertyNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeOccupancyRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeOccupancyRepo) GrantTenantRole(ctx context.Context, userID string) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.IsTenant = true
		}
	}
	return nil
}

func (r *fakeOccupancyRepo) Get(ctx context.Context, leaseID, tenantID string) (*LeaseTenant, error) {
	for i := range r.rows {
		if r.rows[i].LeaseID == leaseID && r.rows[i].TenantID == tenantID {
			copied := r.rows[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeOccupancyRepo) ListActive(ctx context.Context, leaseID string) ([]LeaseTenant, error) {
	var items []LeaseTenant
	for _, row := range r.rows {
		if row.LeaseID == leaseID && row.Active() {
			items = append(items, row)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsPrimary != items[j].IsPrimary {
			return items[i].IsPrimary
		}
		return items[i].JoinedAt.Before(items[j].JoinedAt)
	})
	return items, nil
}

func (r *fakeOccupancyRepo) CountActive(ctx context.Context, leaseID string) (int, error) {
	count := 0
	for _, row := range r.rows {
		if row.LeaseID == leaseID && row.Active() {
			count++
		}
	}
	return count, nil
}

func (r *fakeOccupancyRepo) Create(ctx context.Context, row *LeaseTenant) error {
	r.rows = append(r.rows, *row)
	return nil
}

func (r *fakeOccupancyRepo) Rejoin(ctx context.Context, leaseID, tenantID string, at time.Time) error {
	for i := range r.rows {
		if r.rows[i].LeaseID == leaseID && r.rows[i].TenantID == tenantID {
			r.rows[i].LeftAt = nil
			r.rows[i].IsPrimary = false
			r.rows[i].JoinedAt = at
			return nil
		}
	}
	return ErrOccupantNotFound
}

func (r *fakeOccupancyRepo) UpdateShare(ctx context.Context, leaseID, tenantID string, share int) error {
	for i := range r.rows {
		if r.rows[i].LeaseID == leaseID && r.rows[i].TenantID == tenantID {
			r.rows[i].Share = share
			return nil
		}
	}
	return ErrOccupantNotFound
}

func (r *fakeOccupancyRepo) ClearPrimaries(ctx context.Context, leaseID string) error {
	for i := range r.rows {
		if r.rows[i].LeaseID == leaseID && r.rows[i].Active() {
			r.rows[i].IsPrimary = false
		}
	}
	return nil
}

func (r *fakeOccupancyRepo) SetPrimary(ctx context.Context, leaseID, tenantID string) error {
	for i := range r.rows {
		if r.rows[i].LeaseID == leaseID && r.rows[i].TenantID == tenantID {
			r.rows[i].IsPrimary = true
			return nil
		}
	}
	return ErrOccupantNotFound
}

func (r *fakeOccupancyRepo) Depart(ctx context.Context, leaseID, tenantID string, at time.Time) error {
	for i := range r.rows {
		if r.rows[i].LeaseID == leaseID && r.rows[i].TenantID == tenantID {
			left := at
			r.rows[i].LeftAt = &left
			return nil
		}
	}
	return ErrOccupantNotFound
}

func (r *fakeOccupancyRepo) activeShare(tenantID string) int {
	for _, row := range r.rows {
		if row.TenantID == tenantID && row.Active() {
			return row.Share
		}
	}
	return -1
}

func seedActiveLease(repo *fakeOccupancyRepo) {
	repo.properties[propertyID1] = &property.Property{ID: propertyID1, OwnerID: ownerID1}
	repo.leases[leaseID1] = &lease.Lease{ID: leaseID1, PropertyID: propertyID1, TenantID: primaryID, Status: lease.StatusActive}
	repo.rows = []LeaseTenant{{
		LeaseID: leaseID1, TenantID: primaryID, IsPrimary: true, Share: 100,
		JoinedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
}

func seedUser(repo *fakeOccupancyRepo, id, email string, isTenant bool) {
	repo.users[email] = &user.User{ID: id, Email: email, IsTenant: isTenant}
}

func ownerActor() Actor {
	return Actor{ID: ownerID1, IsOwner: true}
}

func TestAddOccupantEqualSplit(t *testing.T) {
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	seedUser(repo, "cotenant-1", "co@example.com", true)
	svc := NewService(repo)

	added, err := svc.Add(context.Background(), ownerActor(), leaseID1, AddInput{Email: "co@example.com"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if added.Share != 50 {
		t.Fatalf("expected newcomer share 50, got %d", added.Share)
	}
	if repo.activeShare(primaryID) != 50 {
		t.Fatalf("expected primary share 50, got %d", repo.activeShare(primaryID))
	}
}

func TestAddThirdOccupantRemainderToPrimary(t *testing.T) {
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	seedUser(repo, "cotenant-1", "a@example.com", true)
	seedUser(repo, "cotenant-2", "b@example.com", true)
	svc := NewService(repo)

	if _, err := svc.Add(context.Background(), ownerActor(), leaseID1, AddInput{Email: "a@example.com"}); err != nil {
		t.Fatalf("add first co-tenant: %v", err)
	}
	if _, err := svc.Add(context.Background(), ownerActor(), leaseID1, AddInput{Email: "b@example.com"}); err != nil {
		t.Fatalf("add second co-tenant: %v", err)
	}

	// floor(100/3) = 33 each, the leftover point lands on the primary.
	if repo.activeShare(primaryID) != 34 {
		t.Fatalf("expected primary share 34, got %d", repo.activeShare(primaryID))
	}
	if repo.activeShare("cotenant-1") != 33 || repo.activeShare("cotenant-2") != 33 {
		t.Fatalf("expected co-tenant shares 33, got %d and %d", repo.activeShare("cotenant-1"), repo.activeShare("cotenant-2"))
	}
}

func TestAddOccupantExplicitShare(t *testing.T) {
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	seedUser(repo, "cotenant-1", "co@example.com", true)
	svc := NewService(repo)

	share := 40
	added, err := svc.Add(context.Background(), ownerActor(), leaseID1, AddInput{Email: "co@example.com", Share: &share})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if added.Share != 40 {
		t.Fatalf("expected newcomer keeps explicit share 40, got %d", added.Share)
	}
	if repo.activeShare(primaryID) != 60 {
		t.Fatalf("expected primary share 60, got %d", repo.activeShare(primaryID))
	}
}

func TestAddOccupantCapacityLimit(t *testing.T) {
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	for i := 0; i < 4; i++ {
		repo.rows = append(repo.rows, LeaseTenant{
			LeaseID: leaseID1, TenantID: fmt.Sprintf("cotenant-%d", i),
			JoinedAt: time.Date(2026, 2, 1+i, 0, 0, 0, 0, time.UTC),
		})
	}
	seedUser(repo, "one-too-many", "late@example.com", true)
	svc := NewService(repo)

	_, err := svc.Add(context.Background(), ownerActor(), leaseID1, AddInput{Email: "late@example.com"})
	if !errors.Is(err, ErrOccupantLimitReached) {
		t.Fatalf("expected ErrOccupantLimitReached, got %v", err)
	}
}

func TestAddOccupantUnknownEmail(t *testing.T) {
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	svc := NewService(repo)

	_, err := svc.Add(context.Background(), ownerActor(), leaseID1, AddInput{Email: "ghost@example.com"})
	if !errors.Is(err, ErrNoAccountForEmail) {
		t.Fatalf("expected ErrNoAccountForEmail, got %v", err)
	}
}

type failingUserLookupRepo struct {
	*fakeOccupancyRepo
	lookupErr error
}

func (r *failingUserLookupRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *failingUserLookupRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, r.lookupErr
}

func TestAddOccupantUserLookupFailure(t *testing.T) {
	inner := newFakeOccupancyRepo()
	seedActiveLease(inner)
	lookupErr := errors.New("db connection reset")
	repo := &failingUserLookupRepo{fakeOccupancyRepo: inner, lookupErr: lookupErr}
	svc := NewService(repo)

	_, err := svc.Add(context.Background(), ownerActor(), leaseID1, AddInput{Email: "any@example.com"})
	if errors.Is(err, ErrNoAccountForEmail) {
		t.Fatalf("lookup failure must not read as a missing account, got %v", err)
	}
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error to propagate, got %v", err)
	}
}

func TestAddOccupantAlreadyActive(t *testing.T) {
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	seedUser(repo, primaryID, "primary@example.com", true)
	svc := NewService(repo)

	_, err := svc.Add(context.Background(), ownerActor(), leaseID1, AddInput{Email: "primary@example.com"})
	if !errors.Is(err, ErrAlreadyOccupant) {
		t.Fatalf("expected ErrAlreadyOccupant, got %v", err)
	}
}

func TestAddOccupantLeaseNotActive(t *testing.T) {
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	repo.leases[leaseID1].Status = lease.StatusPending
	seedUser(repo, "cotenant-1", "co@example.com", true)
	svc := NewService(repo)

	_, err := svc.Add(context.Background(), ownerActor(), leaseID1, AddInput{Email: "co@example.com"})
	if !errors.Is(err, ErrLeaseNotActive) {
		t.Fatalf("expected ErrLeaseNotActive, got %v", err)
	}
}

func TestAddOccupantGrantsTenantRole(t *testing.T) {
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	seedUser(repo, "newcomer", "new@example.com", false)
	svc := NewService(repo)

	if _, err := svc.Add(context.Background(), ownerActor(), leaseID1, AddInput{Email: "new@example.com"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !repo.users["new@example.com"].IsTenant {
		t.Fatalf("expected tenant role granted")
	}
}

func TestAddDepartedOccupantRejoins(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	left := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	repo.rows = append(repo.rows, LeaseTenant{
		LeaseID: leaseID1, TenantID: "returner",
		JoinedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), LeftAt: &left,
	})
	seedUser(repo, "returner", "back@example.com", true)
	svc := NewService(repo, WithClock(func() time.Time { return now }))

	added, err := svc.Add(context.Background(), ownerActor(), leaseID1, AddInput{Email: "back@example.com"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if added.Share != 50 {
		t.Fatalf("expected rebalanced share 50, got %d", added.Share)
	}

	row, _ := repo.Get(context.Background(), leaseID1, "returner")
	if row == nil || !row.Active() {
		t.Fatalf("expected row reactivated")
	}
	if !row.JoinedAt.Equal(now) {
		t.Fatalf("expected join date restamped to rejoin time, got %v", row.JoinedAt)
	}
	if count, _ := repo.CountActive(context.Background(), leaseID1); count != 2 {
		t.Fatalf("expected 2 active rows, got %d", count)
	}
}

func TestUpdatePromotionKeepsSinglePrimary(t *testing.T) {
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	repo.rows = append(repo.rows, LeaseTenant{
		LeaseID: leaseID1, TenantID: "cotenant-1",
		JoinedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	svc := NewService(repo)

	promote := true
	updated, err := svc.Update(context.Background(), ownerActor(), leaseID1, "cotenant-1", UpdateInput{IsPrimary: &promote})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !updated.IsPrimary {
		t.Fatalf("expected promotion")
	}

	primaries := 0
	for _, row := range repo.rows {
		if row.Active() && row.IsPrimary {
			primaries++
			if row.TenantID != "cotenant-1" {
				t.Fatalf("expected cotenant-1 primary, got %s", row.TenantID)
			}
		}
	}
	if primaries != 1 {
		t.Fatalf("expected exactly one primary, got %d", primaries)
	}
}

func TestUpdateCannotUnsetPrimary(t *testing.T) {
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	svc := NewService(repo)

	demote := false
	_, err := svc.Update(context.Background(), ownerActor(), leaseID1, primaryID, UpdateInput{IsPrimary: &demote})
	if !errors.Is(err, ErrCannotUnsetPrimary) {
		t.Fatalf("expected ErrCannotUnsetPrimary, got %v", err)
	}
}

func TestUpdateShareOutOfRange(t *testing.T) {
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	svc := NewService(repo)

	share := 101
	_, err := svc.Update(context.Background(), ownerActor(), leaseID1, primaryID, UpdateInput{Share: &share})
	if !errors.Is(err, ErrShareOutOfRange) {
		t.Fatalf("expected ErrShareOutOfRange, got %v", err)
	}
}

func TestRemoveLastOccupantRejected(t *testing.T) {
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	svc := NewService(repo)

	err := svc.Remove(context.Background(), ownerActor(), leaseID1, primaryID)
	if !errors.Is(err, ErrLastOccupant) {
		t.Fatalf("expected ErrLastOccupant, got %v", err)
	}
}

func TestRemovePrimaryPromotesEarliestJoined(t *testing.T) {
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	repo.rows = append(repo.rows,
		LeaseTenant{LeaseID: leaseID1, TenantID: "early", JoinedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		LeaseTenant{LeaseID: leaseID1, TenantID: "late", JoinedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	)
	svc := NewService(repo)

	if err := svc.Remove(context.Background(), ownerActor(), leaseID1, primaryID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	row, _ := repo.Get(context.Background(), leaseID1, primaryID)
	if row.Active() {
		t.Fatalf("expected removed occupant departed")
	}

	early, _ := repo.Get(context.Background(), leaseID1, "early")
	if !early.IsPrimary {
		t.Fatalf("expected earliest-joined survivor promoted")
	}
	late, _ := repo.Get(context.Background(), leaseID1, "late")
	if late.IsPrimary {
		t.Fatalf("expected only one primary after promotion")
	}
}

func TestListForbiddenForStranger(t *testing.T) {
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	svc := NewService(repo)

	_, err := svc.List(context.Background(), Actor{ID: "stranger", IsTenant: true}, leaseID1)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestListReportsTotalShare(t *testing.T) {
	repo := newFakeOccupancyRepo()
	seedActiveLease(repo)
	repo.rows[0].Share = 70
	repo.rows = append(repo.rows, LeaseTenant{
		LeaseID: leaseID1, TenantID: "cotenant-1", Share: 20,
		JoinedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	svc := NewService(repo)

	list, err := svc.List(context.Background(), ownerActor(), leaseID1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if list.TotalShare != 90 {
		t.Fatalf("expected advisory total 90, got %d", list.TotalShare)
	}
	if len(list.Occupants) != 2 || !list.Occupants[0].IsPrimary {
		t.Fatalf("expected primary first in listing")
	}
}
