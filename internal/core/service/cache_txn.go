package service

import (
	"context"
	"encoding/json"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

// listTxn is an explicit snapshot/apply/commit/rollback transaction over
// one cached list page. The snapshot is taken at Begin so Rollback can
// restore the exact pre-mutation bytes; Commit replaces the placeholder
// in place (never appends a duplicate) and then drops every other key in
// the resource namespace so stale pages cannot survive the mutation.
//
// When the page is not cached there is nothing to patch: Apply and
// Rollback become no-ops and Commit degrades to a plain namespace
// invalidation.
type listTxn[T any, PT interface {
	*T
	domain.Entity
}] struct {
	cache    ports.ListCache
	resource string
	key      string
	snapshot []byte
	page     ports.Page[T]
	active   bool
}

func beginListTxn[T any, PT interface {
	*T
	domain.Entity
}](ctx context.Context, cache ports.ListCache, resource, key string) *listTxn[T, PT] {
	tx := &listTxn[T, PT]{cache: cache, resource: resource, key: key}

	payload, ok := cache.Get(ctx, key)
	if !ok {
		return tx
	}
	if err := json.Unmarshal(payload, &tx.page); err != nil {
		return tx
	}
	tx.snapshot = payload
	tx.active = true
	return tx
}

// Apply prepends the placeholder to the cached page.
func (tx *listTxn[T, PT]) Apply(ctx context.Context, placeholder T) {
	if !tx.active {
		return
	}
	tx.page.Items = append([]T{placeholder}, tx.page.Items...)
	tx.write(ctx)
}

// Commit swaps the placeholder for the stored entity and invalidates
// the rest of the namespace.
func (tx *listTxn[T, PT]) Commit(ctx context.Context, placeholderID string, entity T) {
	if !tx.active {
		tx.cache.InvalidateResource(ctx, tx.resource)
		return
	}
	for i := range tx.page.Items {
		if PT(&tx.page.Items[i]).EntityID() == placeholderID {
			tx.page.Items[i] = entity
			break
		}
	}
	tx.cache.InvalidateResource(ctx, tx.resource)
	tx.write(ctx)
}

// Rollback restores the snapshot taken at Begin, byte for byte.
func (tx *listTxn[T, PT]) Rollback(ctx context.Context) {
	if !tx.active {
		return
	}
	tx.cache.Set(ctx, tx.resource, tx.key, tx.snapshot)
}

func (tx *listTxn[T, PT]) write(ctx context.Context) {
	payload, err := json.Marshal(&tx.page)
	if err != nil {
		return
	}
	tx.cache.Set(ctx, tx.resource, tx.key, payload)
}
