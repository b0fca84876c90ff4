package ports

import "context"

// ListCache is the shared read cache for list queries. It is the single
// shared mutable cache in the system; all writes go through this port so
// optimistic transactions can snapshot prior state exactly.
//
// Cache failures are soft: Get reports a miss, the write methods log and
// move on. The database remains the source of truth.
type ListCache interface {
	// Get returns the cached payload for key, or ok=false on miss.
	Get(ctx context.Context, key string) (payload []byte, ok bool)
	// Set stores payload under key and registers key in the resource's
	// namespace so InvalidateResource can find it later.
	Set(ctx context.Context, resource, key string, payload []byte)
	// Delete removes a single key.
	Delete(ctx context.Context, key string)
	// InvalidateResource drops every key registered under resource.
	InvalidateResource(ctx context.Context, resource string)
}
