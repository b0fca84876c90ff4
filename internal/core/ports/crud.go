package ports

import "context"

// Pagination limits applied by the service layer.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListQuery carries the query parameters accepted by every list endpoint.
type ListQuery struct {
	Page    int    // 1-based
	Limit   int    // capped at MaxLimit by the service
	Keyword string // optional server-side search
	Sort    string // comma-separated fields, "-" prefix = descending
}

// Normalize clamps the query into its legal range.
func (q ListQuery) Normalize() ListQuery {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// Pagination is the paginationResult object of the list envelope.
type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	Limit         int   `json:"limit"`
	NumberOfPages int   `json:"numberOfPages"`
	TotalDocs     int64 `json:"totalDocs"`
	Next          *int  `json:"next,omitempty"`
	Previous      *int  `json:"previous,omitempty"`
}

// Page is one page of entities plus its pagination metadata.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// CrudRepository defines the persistence operations shared by every
// catalog resource. Implemented once by the generic Mongo store.
type CrudRepository[T any] interface {
	List(ctx context.Context, q ListQuery) (*Page[T], error)
	ListBy(ctx context.Context, field, value string, q ListQuery) (*Page[T], error)
	FindByID(ctx context.Context, id string) (*T, error)
	Insert(ctx context.Context, entity *T) error
	Replace(ctx context.Context, id string, entity *T) error
	Delete(ctx context.Context, id string) error
}

// CrudService defines the use-case surface consumed by the generic
// CRUD handler. One implementation is parameterized per resource.
type CrudService[T any] interface {
	List(ctx context.Context, q ListQuery) (*Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, id string, entity *T) (*T, error)
	Delete(ctx context.Context, id string) error
}
