package property

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakePropertyRepo struct {
	properties map[string]*Property
	getCalls   int
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: make(map[string]*Property)}
}

func (r *fakePropertyRepo) GetByID(ctx context.Context, propertyID string) (*Property, error) {
	r.getCalls++
	p, ok := r.properties[propertyID]
	if !ok {
		return nil, ErrPropertyNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePropertyRepo) ListByOwner(ctx context.Context, ownerID string) ([]Property, error) {
	var items []Property
	for _, p := range r.properties {
		if p.OwnerID == ownerID {
			items = append(items, *p)
		}
	}
	return items, nil
}

func (r *fakePropertyRepo) ListAvailable(ctx context.Context) ([]Property, error) {
	var items []Property
	for _, p := range r.properties {
		if p.Available {
			items = append(items, *p)
		}
	}
	return items, nil
}

func (r *fakePropertyRepo) Create(ctx context.Context, p *Property) error {
	copied := *p
	r.properties[p.ID] = &copied
	return nil
}

type mapCache struct {
	items map[string]*Property
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string]*Property)}
}

func (c *mapCache) Get(propertyID string) (*Property, bool) {
	p, ok := c.items[propertyID]
	return p, ok
}

func (c *mapCache) Set(propertyID string, p *Property, ttl time.Duration) {
	c.items[propertyID] = p
}

func (c *mapCache) Delete(propertyID string) {
	delete(c.items, propertyID)
}

func TestCreatePropertyValidation(t *testing.T) {
	svc := NewService(newFakePropertyRepo())

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"missing title", CreateInput{OwnerID: "o1", Address: "1 Main St", MonthlyRent: 800}},
		{"missing address", CreateInput{OwnerID: "o1", Title: "Flat", MonthlyRent: 800}},
		{"zero rent", CreateInput{OwnerID: "o1", Title: "Flat", Address: "1 Main St"}},
		{"negative charges", CreateInput{OwnerID: "o1", Title: "Flat", Address: "1 Main St", MonthlyRent: 800, Charges: -1}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), tc.input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestCreatePropertyStartsAvailable(t *testing.T) {
	repo := newFakePropertyRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), CreateInput{OwnerID: "o1", Title: "Flat", Address: "1 Main St", MonthlyRent: 800, Charges: 50})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !p.Available {
		t.Fatalf("new property must start available")
	}
	if repo.properties[p.ID] == nil {
		t.Fatalf("property not stored")
	}
}

func TestGetUsesCache(t *testing.T) {
	repo := newFakePropertyRepo()
	repo.properties["p1"] = &Property{ID: "p1", OwnerID: "o1", Title: "Flat", Address: "1 Main St", MonthlyRent: 800, Available: true}
	cache := newMapCache()
	svc := NewService(repo, WithCache(cache, time.Minute))

	if _, err := svc.Get(context.Background(), "p1"); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if _, err := svc.Get(context.Background(), "p1"); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if repo.getCalls != 1 {
		t.Fatalf("expected one repository hit, got %d", repo.getCalls)
	}

	svc.Invalidate("p1")
	if _, err := svc.Get(context.Background(), "p1"); err != nil {
		t.Fatalf("get after invalidation: %v", err)
	}
	if repo.getCalls != 2 {
		t.Fatalf("expected repository hit after invalidation, got %d", repo.getCalls)
	}
}
