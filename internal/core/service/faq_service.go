package service

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/Tourism-Ease/booking-api/internal/api/metrics"
	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

const (
	// faqFallback is returned when nothing scores above the threshold.
	faqFallback = "Sorry, I don't have an answer for that yet. Please contact our support team."
	// faqMatchThreshold is the minimum overlap score counted as a match.
	faqMatchThreshold = 2
)

// FAQService answers free-text questions by token overlap against the
// FAQ corpus. An explicit keyword hit weighs double a plain word hit.
type FAQService struct {
	entries ports.CrudRepository[domain.FAQEntry]
	logger  zerolog.Logger
}

func NewFAQService(entries ports.CrudRepository[domain.FAQEntry], logger zerolog.Logger) *FAQService {
	return &FAQService{entries: entries, logger: logger}
}

func (s *FAQService) Ask(ctx context.Context, question string) (*ports.FAQAnswer, error) {
	words := tokenize(question)
	if len(words) == 0 {
		metrics.FAQQuestionsTotal.WithLabelValues("false").Inc()
		return &ports.FAQAnswer{Answer: faqFallback}, nil
	}

	// The corpus is small; one page at the cap covers it.
	page, err := s.entries.List(ctx, ports.ListQuery{Page: 1, Limit: ports.MaxLimit})
	if err != nil {
		return nil, err
	}

	var best *domain.FAQEntry
	bestScore := 0
	for i := range page.Items {
		score := scoreEntry(&page.Items[i], words)
		if score > bestScore {
			bestScore = score
			best = &page.Items[i]
		}
	}

	if best == nil || bestScore < faqMatchThreshold {
		metrics.FAQQuestionsTotal.WithLabelValues("false").Inc()
		return &ports.FAQAnswer{Answer: faqFallback}, nil
	}

	metrics.FAQQuestionsTotal.WithLabelValues("true").Inc()
	s.logger.Debug().Str("faq_id", best.ID).Str("score", strconv.Itoa(bestScore)).Msg("faq matched")
	return &ports.FAQAnswer{Question: best.Question, Answer: best.Answer, Matched: true}, nil
}

func scoreEntry(entry *domain.FAQEntry, words map[string]struct{}) int {
	score := 0
	for w := range tokenize(entry.Question) {
		if _, ok := words[w]; ok {
			score++
		}
	}
	for _, kw := range entry.Keywords {
		if _, ok := words[strings.ToLower(kw)]; ok {
			score += 2
		}
	}
	return score
}

// tokenize lowercases, strips punctuation and drops words shorter than
// three characters (articles, pronouns, noise).
func tokenize(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		if len(w) >= 3 {
			out[w] = struct{}{}
		}
	}
	return out
}
