package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Tourism-Ease/booking-api/internal/api/metrics"
	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

// CatalogService is the one CRUD use-case implementation shared by all
// catalog resources (destinations, hotels, transportations, packages,
// trips, FAQ entries). It adds a read-through list cache on top of the
// repository and invalidates the resource's cache namespace whenever a
// mutation settles, successfully or not.
//
// Resources created with optimistic=true patch the cached list before
// the insert resolves: a placeholder (temporary id, pending marker) is
// prepended, then either replaced in place by the stored entity or
// rolled back to the exact pre-mutation snapshot.
type CatalogService[T any, PT interface {
	*T
	domain.Entity
}] struct {
	name       string
	repo       ports.CrudRepository[T]
	cache      ports.ListCache
	optimistic bool
	logger     zerolog.Logger
}

func NewCatalogService[T any, PT interface {
	*T
	domain.Entity
}](name string, repo ports.CrudRepository[T], cache ports.ListCache, optimistic bool, logger zerolog.Logger) *CatalogService[T, PT] {
	return &CatalogService[T, PT]{
		name:       name,
		repo:       repo,
		cache:      cache,
		optimistic: optimistic,
		logger:     logger,
	}
}

func (s *CatalogService[T, PT]) List(ctx context.Context, q ports.ListQuery) (*ports.Page[T], error) {
	q = q.Normalize()
	key := listCacheKey(s.name, q)

	if payload, ok := s.cache.Get(ctx, key); ok {
		var page ports.Page[T]
		if err := json.Unmarshal(payload, &page); err == nil {
			metrics.CacheLookupsTotal.WithLabelValues(s.name, "hit").Inc()
			return &page, nil
		}
		// Corrupt entry: drop it and fall through to the database.
		s.cache.Delete(ctx, key)
	}
	metrics.CacheLookupsTotal.WithLabelValues(s.name, "miss").Inc()

	page, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(page); err == nil {
		s.cache.Set(ctx, s.name, key, payload)
	}
	return page, nil
}

func (s *CatalogService[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService[T, PT]) Create(ctx context.Context, entity *T) (*T, error) {
	if d, ok := any(entity).(domain.Defaulter); ok {
		d.ApplyDefaults()
	}
	PT(entity).Touch(time.Now().UTC(), true)

	if !s.optimistic {
		err := s.repo.Insert(ctx, entity)
		s.cache.InvalidateResource(ctx, s.name)
		if err != nil {
			return nil, err
		}
		return entity, nil
	}

	// Optimistic path: patch the default list page before the insert.
	placeholder := *entity
	placeholderID := "tmp-" + uuid.NewString()
	PT(&placeholder).SetEntityID(placeholderID)
	PT(&placeholder).MarkPending(true)

	tx := beginListTxn[T, PT](ctx, s.cache, s.name, listCacheKey(s.name, ports.ListQuery{}.Normalize()))
	tx.Apply(ctx, placeholder)

	if err := s.repo.Insert(ctx, entity); err != nil {
		tx.Rollback(ctx)
		return nil, err
	}

	tx.Commit(ctx, placeholderID, *entity)
	return entity, nil
}

func (s *CatalogService[T, PT]) Update(ctx context.Context, id string, entity *T) (*T, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	PT(entity).Touch(time.Now().UTC(), false)
	PT(entity).SetCreatedStamp(PT(existing).CreatedStamp())

	err = s.repo.Replace(ctx, id, entity)
	s.cache.InvalidateResource(ctx, s.name)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *CatalogService[T, PT]) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	s.cache.InvalidateResource(ctx, s.name)
	return err
}

func listCacheKey(resource string, q ports.ListQuery) string {
	return fmt.Sprintf("cache:list:%s:p%d:l%d:k%s:s%s", resource, q.Page, q.Limit, q.Keyword, q.Sort)
}
