// Package overflow decides whether a serialized payload fits the QR size
// budget and, when it does not, obtains a summary candidate from the external
// collaborator. It never substitutes the summary itself: the caller must get
// explicit user confirmation first.
package overflow

import (
	"context"
	"unicode/utf8"
)

// Summarizer is the external compression collaborator. A single call, no
// retries; failure surfaces immediately.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type Kind string

const (
	Direct        Kind = "direct"
	NeedsSummary  Kind = "needs_summary"
	SummaryFailed Kind = "summary_failed"
)

type Outcome struct {
	Kind Kind
	// Text is the original payload for Direct, the summary candidate for
	// NeedsSummary, empty for SummaryFailed.
	Text string
	// Reason carries the collaborator's failure message for SummaryFailed.
	Reason string
}

type Resolver struct {
	limit      int
	summarizer Summarizer
}

// New builds a resolver with the given character limit. The limit counts
// runes, not bytes: it mirrors what the user sees as "characters".
func New(limit int, s Summarizer) *Resolver {
	return &Resolver{limit: limit, summarizer: s}
}

// Resolve returns Direct without ever touching the summarizer when the text
// is at or under the limit.
func (r *Resolver) Resolve(ctx context.Context, text string) Outcome {
	if utf8.RuneCountInString(text) <= r.limit {
		return Outcome{Kind: Direct, Text: text}
	}
	summary, err := r.summarizer.Summarize(ctx, text)
	if err != nil {
		return Outcome{Kind: SummaryFailed, Reason: err.Error()}
	}
	return Outcome{Kind: NeedsSummary, Text: summary}
}
