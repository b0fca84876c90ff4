package ports

import "context"

// FAQAnswer is the matcher's reply. Matched is false when no entry
// scored above the threshold and Answer holds the fallback message.
type FAQAnswer struct {
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer"`
	Matched  bool   `json:"matched"`
}

// FAQService answers free-text questions from the FAQ corpus.
type FAQService interface {
	Ask(ctx context.Context, question string) (*FAQAnswer, error)
}
