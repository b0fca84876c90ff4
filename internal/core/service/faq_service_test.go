package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

type memFAQRepo struct {
	entries []domain.FAQEntry
}

func (r *memFAQRepo) List(_ context.Context, q ports.ListQuery) (*ports.Page[domain.FAQEntry], error) {
	return &ports.Page[domain.FAQEntry]{Items: r.entries, Pagination: ports.Pagination{CurrentPage: q.Page, Limit: q.Limit}}, nil
}

func (r *memFAQRepo) ListBy(ctx context.Context, _, _ string, q ports.ListQuery) (*ports.Page[domain.FAQEntry], error) {
	return r.List(ctx, q)
}

func (r *memFAQRepo) FindByID(_ context.Context, id string) (*domain.FAQEntry, error) {
	for i := range r.entries {
		if r.entries[i].ID == id {
			return &r.entries[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memFAQRepo) Insert(_ context.Context, entry *domain.FAQEntry) error {
	entry.ID = "f" + strconv.Itoa(len(r.entries)+1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memFAQRepo) Replace(_ context.Context, _ string, _ *domain.FAQEntry) error { return nil }
func (r *memFAQRepo) Delete(_ context.Context, _ string) error                      { return nil }

func newFAQFixture(t *testing.T) *FAQService {
	t.Helper()
	repo := &memFAQRepo{}
	for _, e := range []domain.FAQEntry{
		{
			Question: "How do I cancel my booking?",
			Answer:   "Open your bookings page and press cancel on the trip.",
			Keywords: []string{"cancel", "refund"},
		},
		{
			Question: "What payment methods are accepted?",
			Answer:   "We accept credit cards and bank transfers.",
			Keywords: []string{"payment", "card"},
		},
	} {
		entry := e
		if err := repo.Insert(context.Background(), &entry); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return NewFAQService(repo, zerolog.Nop())
}

func TestFAQAskMatches(t *testing.T) {
	svc := newFAQFixture(t)

	got, err := svc.Ask(context.Background(), "Can I cancel a booking I made yesterday?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !got.Matched {
		t.Fatalf("expected a match, got %+v", got)
	}
	if got.Answer != "Open your bookings page and press cancel on the trip." {
		t.Fatalf("wrong entry matched: %+v", got)
	}
}

func TestFAQAskKeywordOutweighsWordOverlap(t *testing.T) {
	svc := newFAQFixture(t)

	// "payment" only appears as a keyword hit plus one question word,
	// which must beat the single-word overlap with the other entry.
	got, err := svc.Ask(context.Background(), "which payment options do you have")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !got.Matched || got.Answer != "We accept credit cards and bank transfers." {
		t.Fatalf("expected payment entry, got %+v", got)
	}
}

func TestFAQAskFallsBack(t *testing.T) {
	svc := newFAQFixture(t)

	for _, q := range []string{"", "za zu", "tell me about llamas"} {
		got, err := svc.Ask(context.Background(), q)
		if err != nil {
			t.Fatalf("ask %q: %v", q, err)
		}
		if got.Matched || got.Answer != faqFallback {
			t.Fatalf("expected fallback for %q, got %+v", q, got)
		}
	}
}
