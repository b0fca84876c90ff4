package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

// Store is the generic Mongo-backed repository behind every catalog
// resource. searchFields are the document fields matched by the
// keyword parameter.
type Store[T any, PT interface {
	*T
	domain.Entity
}] struct {
	col          *mongo.Collection
	searchFields []string
}

// NewStore creates a Store over the named collection.
func NewStore[T any, PT interface {
	*T
	domain.Entity
}](db *mongo.Database, collection string, searchFields ...string) *Store[T, PT] {
	return &Store[T, PT]{col: db.Collection(collection), searchFields: searchFields}
}

// List returns one page of documents matching the query.
func (s *Store[T, PT]) List(ctx context.Context, q ports.ListQuery) (*ports.Page[T], error) {
	return s.list(ctx, q, bson.M{})
}

// ListBy lists documents with an additional equality filter, used for
// ownership-scoped listings (e.g. a user's own bookings).
func (s *Store[T, PT]) ListBy(ctx context.Context, field, value string, q ports.ListQuery) (*ports.Page[T], error) {
	return s.list(ctx, q, bson.M{field: value})
}

func (s *Store[T, PT]) list(ctx context.Context, q ports.ListQuery, filter bson.M) (*ports.Page[T], error) {
	q = q.Normalize()

	if q.Keyword != "" && len(s.searchFields) > 0 {
		or := make([]bson.M, 0, len(s.searchFields))
		for _, f := range s.searchFields {
			or = append(or, bson.M{f: bson.M{"$regex": regexp.QuoteMeta(q.Keyword), "$options": "i"}})
		}
		filter["$or"] = or
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit)).
		SetSort(parseSort(q.Sort))

	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, q.Limit)
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}

	return &ports.Page[T]{Items: items, Pagination: paginate(q, total)}, nil
}

// FindByID retrieves a single document by its identifier.
func (s *Store[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var entity T
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&entity); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// Insert stores a new document, assigning an identifier when the entity
// does not carry one yet.
func (s *Store[T, PT]) Insert(ctx context.Context, entity *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if PT(entity).EntityID() == "" {
		PT(entity).SetEntityID(primitive.NewObjectID().Hex())
	}
	_, err := s.col.InsertOne(ctx, entity)
	return err
}

// Replace overwrites the document with the given id.
func (s *Store[T, PT]) Replace(ctx context.Context, id string, entity *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	PT(entity).SetEntityID(id)
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": id}, entity)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the document with the given id.
func (s *Store[T, PT]) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// parseSort converts "price,-createdAt" into a Mongo sort document.
// Defaults to newest-first.
func parseSort(sort string) bson.D {
	var d bson.D
	for _, part := range strings.Split(sort, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dir := 1
		if strings.HasPrefix(part, "-") {
			dir = -1
			part = part[1:]
		}
		d = append(d, bson.E{Key: part, Value: dir})
	}
	if len(d) == 0 {
		d = bson.D{{Key: "createdAt", Value: -1}}
	}
	return d
}

func paginate(q ports.ListQuery, total int64) ports.Pagination {
	pages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	p := ports.Pagination{
		CurrentPage:   q.Page,
		Limit:         q.Limit,
		NumberOfPages: pages,
		TotalDocs:     total,
	}
	if q.Page < pages {
		next := q.Page + 1
		p.Next = &next
	}
	if q.Page > 1 {
		prev := q.Page - 1
		p.Previous = &prev
	}
	return p
}
