package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

type stubCrudService struct {
	listFn   func(ctx context.Context, q ports.ListQuery) (*ports.Page[domain.Destination], error)
	getFn    func(ctx context.Context, id string) (*domain.Destination, error)
	createFn func(ctx context.Context, d *domain.Destination) (*domain.Destination, error)
	updateFn func(ctx context.Context, id string, d *domain.Destination) (*domain.Destination, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubCrudService) List(ctx context.Context, q ports.ListQuery) (*ports.Page[domain.Destination], error) {
	return s.listFn(ctx, q)
}

func (s *stubCrudService) Get(ctx context.Context, id string) (*domain.Destination, error) {
	return s.getFn(ctx, id)
}

func (s *stubCrudService) Create(ctx context.Context, d *domain.Destination) (*domain.Destination, error) {
	return s.createFn(ctx, d)
}

func (s *stubCrudService) Update(ctx context.Context, id string, d *domain.Destination) (*domain.Destination, error) {
	return s.updateFn(ctx, id, d)
}

func (s *stubCrudService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func newListContext(t *testing.T, query url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, "/destinations?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCrudListEnvelope(t *testing.T) {
	stub := &stubCrudService{
		listFn: func(_ context.Context, q ports.ListQuery) (*ports.Page[domain.Destination], error) {
			if q.Page != 2 || q.Limit != 5 || q.Keyword != "nile" || q.Sort != "-createdAt" {
				t.Fatalf("query not forwarded: %+v", q)
			}
			next := 3
			prev := 1
			return &ports.Page[domain.Destination]{
				Items: []domain.Destination{{Name: "Cairo"}},
				Pagination: ports.Pagination{
					CurrentPage: 2, Limit: 5, NumberOfPages: 3, TotalDocs: 11,
					Next: &next, Previous: &prev,
				},
			}, nil
		},
	}
	h := NewCrudHandler[domain.Destination]("destination", stub, nil, nil)

	c, rec := newListContext(t, url.Values{
		"page": {"2"}, "limit": {"5"}, "keyword": {"nile"}, "sort": {"-createdAt"},
	})
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{"results", "paginationResult", "data"} {
		if _, ok := resp[key]; !ok {
			t.Fatalf("missing %q in envelope: %s", key, rec.Body.String())
		}
	}
	if string(resp["results"]) != "1" {
		t.Fatalf("results should count the page items, got %s", resp["results"])
	}

	var pag ports.Pagination
	if err := json.Unmarshal(resp["paginationResult"], &pag); err != nil {
		t.Fatalf("paginationResult: %v", err)
	}
	if pag.TotalDocs != 11 || pag.Next == nil || *pag.Next != 3 {
		t.Fatalf("unexpected pagination: %+v", pag)
	}
}

func TestCrudListRejectsBadPagination(t *testing.T) {
	stub := &stubCrudService{
		listFn: func(_ context.Context, _ ports.ListQuery) (*ports.Page[domain.Destination], error) {
			t.Fatalf("service must not run on invalid pagination")
			return nil, nil
		},
	}
	h := NewCrudHandler[domain.Destination]("destination", stub, nil, nil)

	for _, q := range []url.Values{
		{"page": {"0"}},
		{"page": {"-1"}},
		{"page": {"abc"}},
		{"limit": {"0"}},
		{"limit": {"x"}},
	} {
		c, _ := newListContext(t, q)
		err := h.List(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("query %v: expected 400, got %v", q, err)
		}
	}
}

func TestCrudListDefaultsAndCap(t *testing.T) {
	var seen ports.ListQuery
	stub := &stubCrudService{
		listFn: func(_ context.Context, q ports.ListQuery) (*ports.Page[domain.Destination], error) {
			seen = q
			return &ports.Page[domain.Destination]{Items: nil}, nil
		},
	}
	h := NewCrudHandler[domain.Destination]("destination", stub, nil, nil)

	c, _ := newListContext(t, url.Values{})
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if seen.Page != ports.DefaultPage || seen.Limit != ports.DefaultLimit {
		t.Fatalf("defaults not applied: %+v", seen)
	}

	c, _ = newListContext(t, url.Values{"limit": {"9999"}})
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if seen.Limit != ports.MaxLimit {
		t.Fatalf("limit not capped: %+v", seen)
	}
}

func TestCrudCreateValidatesEntity(t *testing.T) {
	stub := &stubCrudService{
		createFn: func(_ context.Context, _ *domain.Destination) (*domain.Destination, error) {
			t.Fatalf("service must not run on invalid entity")
			return nil, nil
		},
	}
	h := NewCrudHandler[domain.Destination]("destination", stub, nil, nil)

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/destinations", strings.NewReader(`{"name":"Cairo"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %v", err)
	}
}

func TestCrudCreateAndGet(t *testing.T) {
	stub := &stubCrudService{
		createFn: func(_ context.Context, d *domain.Destination) (*domain.Destination, error) {
			d.ID = "d1"
			return d, nil
		},
		getFn: func(_ context.Context, id string) (*domain.Destination, error) {
			if id != "d1" {
				return nil, domain.ErrNotFound
			}
			out := domain.Destination{Name: "Cairo", Country: "Egypt", City: "Cairo"}
			out.ID = "d1"
			return &out, nil
		},
	}
	h := NewCrudHandler[domain.Destination]("destination", stub, nil, nil)

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/destinations",
		strings.NewReader(`{"name":"Cairo","country":"Egypt","city":"Cairo"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/destinations/d1", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("d1")
	if err := h.Get(c); err != nil {
		t.Fatalf("get: %v", err)
	}

	var resp struct {
		Data domain.Destination `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Data.ID != "d1" || resp.Data.Name != "Cairo" {
		t.Fatalf("unexpected data envelope: %+v", resp.Data)
	}

	// Unknown id surfaces the domain sentinel for the error handler.
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/destinations/nope", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("nope")
	if err := h.Get(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
