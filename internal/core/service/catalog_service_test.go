package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

// fakeCache is an in-memory ports.ListCache tracking keys per resource
// namespace, mirroring the Redis implementation's semantics.
type fakeCache struct {
	entries    map[string][]byte
	namespaces map[string]map[string]struct{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries:    map[string][]byte{},
		namespaces: map[string]map[string]struct{}{},
	}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	payload, ok := c.entries[key]
	return payload, ok
}

func (c *fakeCache) Set(_ context.Context, resource, key string, payload []byte) {
	c.entries[key] = payload
	ns, ok := c.namespaces[resource]
	if !ok {
		ns = map[string]struct{}{}
		c.namespaces[resource] = ns
	}
	ns[key] = struct{}{}
}

func (c *fakeCache) Delete(_ context.Context, key string) {
	delete(c.entries, key)
}

func (c *fakeCache) InvalidateResource(_ context.Context, resource string) {
	for key := range c.namespaces[resource] {
		delete(c.entries, key)
	}
	delete(c.namespaces, resource)
}

// fakeCrudRepo is an in-memory ports.CrudRepository for catalog tests.
type fakeCrudRepo struct {
	seq       int
	items     map[string]domain.Destination
	listCalls int
	insertErr error
}

func newFakeCrudRepo() *fakeCrudRepo {
	return &fakeCrudRepo{items: map[string]domain.Destination{}}
}

func (r *fakeCrudRepo) List(_ context.Context, q ports.ListQuery) (*ports.Page[domain.Destination], error) {
	r.listCalls++
	items := make([]domain.Destination, 0, len(r.items))
	for _, d := range r.items {
		if q.Keyword != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(q.Keyword)) {
			continue
		}
		items = append(items, d)
	}
	return &ports.Page[domain.Destination]{
		Items:      items,
		Pagination: ports.Pagination{CurrentPage: q.Page, Limit: q.Limit, NumberOfPages: 1, TotalDocs: int64(len(items))},
	}, nil
}

func (r *fakeCrudRepo) ListBy(ctx context.Context, _, _ string, q ports.ListQuery) (*ports.Page[domain.Destination], error) {
	return r.List(ctx, q)
}

func (r *fakeCrudRepo) FindByID(_ context.Context, id string) (*domain.Destination, error) {
	d, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (r *fakeCrudRepo) Insert(_ context.Context, entity *domain.Destination) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.seq++
	entity.ID = "d" + strconv.Itoa(r.seq)
	r.items[entity.ID] = *entity
	return nil
}

func (r *fakeCrudRepo) Replace(_ context.Context, id string, entity *domain.Destination) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	entity.ID = id
	r.items[id] = *entity
	return nil
}

func (r *fakeCrudRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func newCatalogFixture(optimistic bool) (*CatalogService[domain.Destination, *domain.Destination], *fakeCrudRepo, *fakeCache) {
	repo := newFakeCrudRepo()
	cache := newFakeCache()
	svc := NewCatalogService[domain.Destination]("destinations", repo, cache, optimistic, zerolog.Nop())
	return svc, repo, cache
}

func seedDestination(t *testing.T, repo *fakeCrudRepo, name string) domain.Destination {
	t.Helper()
	d := domain.Destination{Name: name, Country: "Egypt", City: name}
	if err := repo.Insert(context.Background(), &d); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return d
}

func defaultPage(t *testing.T, cache *fakeCache) *ports.Page[domain.Destination] {
	t.Helper()
	key := listCacheKey("destinations", ports.ListQuery{}.Normalize())
	payload, ok := cache.Get(context.Background(), key)
	if !ok {
		return nil
	}
	var page ports.Page[domain.Destination]
	if err := json.Unmarshal(payload, &page); err != nil {
		t.Fatalf("corrupt cached page: %v", err)
	}
	return &page
}

func TestCatalogListCachesPages(t *testing.T) {
	svc, repo, _ := newCatalogFixture(false)
	seedDestination(t, repo, "Cairo")

	q := ports.ListQuery{}.Normalize()
	if _, err := svc.List(context.Background(), q); err != nil {
		t.Fatalf("list: %v", err)
	}
	page, err := svc.List(context.Background(), q)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if repo.listCalls != 1 {
		t.Fatalf("expected second list served from cache, repo hit %d times", repo.listCalls)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Cairo" {
		t.Fatalf("unexpected cached page: %+v", page.Items)
	}
}

func TestCatalogListCorruptCacheFallsThrough(t *testing.T) {
	svc, repo, cache := newCatalogFixture(false)
	seedDestination(t, repo, "Cairo")

	key := listCacheKey("destinations", ports.ListQuery{}.Normalize())
	cache.Set(context.Background(), "destinations", key, []byte("{not json"))

	page, err := svc.List(context.Background(), ports.ListQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected database fallback, got %+v", page.Items)
	}
	if _, ok := cache.Get(context.Background(), key); !ok {
		t.Fatalf("expected fresh page re-cached")
	}
}

func TestCatalogCreateInvalidatesCache(t *testing.T) {
	svc, _, cache := newCatalogFixture(false)

	q := ports.ListQuery{}.Normalize()
	if _, err := svc.List(context.Background(), q); err != nil {
		t.Fatalf("list: %v", err)
	}

	if _, err := svc.Create(context.Background(), &domain.Destination{Name: "Luxor", Country: "Egypt", City: "Luxor"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if page := defaultPage(t, cache); page != nil {
		t.Fatalf("expected cache invalidated, found %+v", page.Items)
	}
}

func TestOptimisticCreateCommitsIntoCachedPage(t *testing.T) {
	svc, repo, cache := newCatalogFixture(true)
	seedDestination(t, repo, "Cairo")

	// Warm the default page so the transaction has something to patch.
	if _, err := svc.List(context.Background(), ports.ListQuery{}); err != nil {
		t.Fatalf("warm list: %v", err)
	}

	created, err := svc.Create(context.Background(), &domain.Destination{Name: "Luxor", Country: "Egypt", City: "Luxor"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	page := defaultPage(t, cache)
	if page == nil {
		t.Fatalf("default page missing after commit")
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected placeholder replaced in place, got %d items", len(page.Items))
	}
	first := page.Items[0]
	if first.ID != created.ID || strings.HasPrefix(first.ID, "tmp-") {
		t.Fatalf("placeholder not swapped for the stored entity: %+v", first)
	}
	if first.Pending {
		t.Fatalf("committed entity still marked pending")
	}
}

func TestOptimisticCreateRollsBackToSnapshot(t *testing.T) {
	svc, repo, cache := newCatalogFixture(true)
	seedDestination(t, repo, "Cairo")

	if _, err := svc.List(context.Background(), ports.ListQuery{}); err != nil {
		t.Fatalf("warm list: %v", err)
	}
	key := listCacheKey("destinations", ports.ListQuery{}.Normalize())
	before, _ := cache.Get(context.Background(), key)

	repo.insertErr = errors.New("write failed")
	if _, err := svc.Create(context.Background(), &domain.Destination{Name: "Luxor", Country: "Egypt", City: "Luxor"}); err == nil {
		t.Fatalf("expected create failure")
	}

	after, ok := cache.Get(context.Background(), key)
	if !ok {
		t.Fatalf("page missing after rollback")
	}
	if string(after) != string(before) {
		t.Fatalf("rollback did not restore the snapshot:\nbefore %s\nafter  %s", before, after)
	}
}

func TestOptimisticCreateColdCacheStillInvalidates(t *testing.T) {
	svc, _, cache := newCatalogFixture(true)

	// Another page in the namespace must not survive the create.
	otherKey := listCacheKey("destinations", ports.ListQuery{Page: 2}.Normalize())
	cache.Set(context.Background(), "destinations", otherKey, []byte(`{"items":[]}`))

	if _, err := svc.Create(context.Background(), &domain.Destination{Name: "Luxor", Country: "Egypt", City: "Luxor"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := cache.Get(context.Background(), otherKey); ok {
		t.Fatalf("stale page survived the mutation")
	}
}

func TestCatalogUpdateKeepsCreationStamp(t *testing.T) {
	svc, repo, cache := newCatalogFixture(false)

	created, err := svc.Create(context.Background(), &domain.Destination{Name: "Cairo", Country: "Egypt", City: "Cairo"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.List(context.Background(), ports.ListQuery{}); err != nil {
		t.Fatalf("list: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, &domain.Destination{Name: "Giza", Country: "Egypt", City: "Giza"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("createdAt lost on update: %v vs %v", updated.CreatedAt, created.CreatedAt)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Fatalf("updatedAt not stamped: %+v", updated.Meta)
	}
	if page := defaultPage(t, cache); page != nil {
		t.Fatalf("expected cache invalidated after update")
	}

	stored, err := repo.FindByID(context.Background(), created.ID)
	if err != nil || stored.Name != "Giza" {
		t.Fatalf("replace not persisted: %+v err=%v", stored, err)
	}
}

func TestCatalogDeleteInvalidatesCache(t *testing.T) {
	svc, repo, cache := newCatalogFixture(false)
	d := seedDestination(t, repo, "Cairo")

	if _, err := svc.List(context.Background(), ports.ListQuery{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := svc.Delete(context.Background(), d.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if page := defaultPage(t, cache); page != nil {
		t.Fatalf("expected cache invalidated after delete")
	}

	if err := svc.Delete(context.Background(), d.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// fakeTripRepo is a minimal in-memory ports.CrudRepository for trip tests.
type fakeTripRepo struct {
	seq   int
	items map[string]domain.Trip
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{items: map[string]domain.Trip{}}
}

func (r *fakeTripRepo) List(_ context.Context, q ports.ListQuery) (*ports.Page[domain.Trip], error) {
	items := make([]domain.Trip, 0, len(r.items))
	for _, tr := range r.items {
		items = append(items, tr)
	}
	return &ports.Page[domain.Trip]{
		Items:      items,
		Pagination: ports.Pagination{CurrentPage: q.Page, Limit: q.Limit, NumberOfPages: 1, TotalDocs: int64(len(items))},
	}, nil
}

func (r *fakeTripRepo) ListBy(ctx context.Context, _, _ string, q ports.ListQuery) (*ports.Page[domain.Trip], error) {
	return r.List(ctx, q)
}

func (r *fakeTripRepo) FindByID(_ context.Context, id string) (*domain.Trip, error) {
	tr, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tr, nil
}

func (r *fakeTripRepo) Insert(_ context.Context, entity *domain.Trip) error {
	r.seq++
	entity.ID = "t" + strconv.Itoa(r.seq)
	r.items[entity.ID] = *entity
	return nil
}

func (r *fakeTripRepo) Replace(_ context.Context, id string, entity *domain.Trip) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	entity.ID = id
	r.items[id] = *entity
	return nil
}

func (r *fakeTripRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func TestCatalogCreateDefaultsTripToScheduled(t *testing.T) {
	repo := newFakeTripRepo()
	svc := NewCatalogService[domain.Trip]("trips", repo, newFakeCache(), false, zerolog.Nop())

	trip := domain.Trip{Name: "Nile Cruise", PackageID: "p1", Capacity: 10, Price: 200}
	created, err := svc.Create(context.Background(), &trip)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != domain.TripScheduled {
		t.Fatalf("expected status %q, got %q", domain.TripScheduled, created.Status)
	}

	stored, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Status != domain.TripScheduled {
		t.Fatalf("stored trip not bookable, status %q", stored.Status)
	}
}

func TestCatalogCreateKeepsExplicitTripStatus(t *testing.T) {
	repo := newFakeTripRepo()
	svc := NewCatalogService[domain.Trip]("trips", repo, newFakeCache(), false, zerolog.Nop())

	trip := domain.Trip{Name: "Nile Cruise", PackageID: "p1", Capacity: 10, Status: domain.TripCancelled}
	created, err := svc.Create(context.Background(), &trip)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != domain.TripCancelled {
		t.Fatalf("expected status %q, got %q", domain.TripCancelled, created.Status)
	}
}
