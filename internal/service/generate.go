// Package service orchestrates the submission pipeline: validate, serialize,
// resolve overflow, encode, record history. A submission that overflows parks
// behind a confirmation token until the user accepts or rejects the summary;
// no artifact exists before an explicit accept.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"qrsecure/internal/encode"
	"qrsecure/internal/errs"
	"qrsecure/internal/forms"
	"qrsecure/internal/history"
	"qrsecure/internal/overflow"
	"qrsecure/internal/serialize"
)

type Status string

const (
	StatusDone          Status = "ok"
	StatusNeedsSummary  Status = "needs_summary"
	StatusSummaryFailed Status = "summary_failed"
	StatusRejected      Status = "rejected"
)

// Result is the outcome of a Generate or Confirm call that did not fail
// outright. Artifact and Entry are set for StatusDone only; Token and Summary
// for StatusNeedsSummary; Reason for StatusSummaryFailed.
type Result struct {
	Status   Status
	Artifact *encode.Artifact
	Entry    *history.Entry
	Token    string
	Summary  string
	Reason   string
	// Warning is set when the artifact was produced but history persistence
	// failed. Surfaced, not swallowed.
	Warning string
}

// pendingTTL bounds how long an unanswered summary confirmation is kept.
const pendingTTL = 10 * time.Minute

type pending struct {
	values  forms.Values
	summary string
	expires time.Time
}

type Generator struct {
	resolver *overflow.Resolver
	encoder  *encode.Encoder
	repo     history.Repository

	mu      sync.Mutex
	waiting map[string]pending

	now func() time.Time
}

func NewGenerator(resolver *overflow.Resolver, encoder *encode.Encoder, repo history.Repository) *Generator {
	return &Generator{
		resolver: resolver,
		encoder:  encoder,
		repo:     repo,
		waiting:  make(map[string]pending),
		now:      time.Now,
	}
}

// Generate runs one submission through the pipeline. Validation failures come
// back as *forms.ValidationError; encoding failures wrap errs.ErrEncodeFailed.
func (g *Generator) Generate(ctx context.Context, formType string, raw map[string]any) (*Result, error) {
	const op = "service.Generate"

	values, err := forms.Validate(formType, raw)
	if err != nil {
		return nil, err
	}

	text := serialize.Text(values)

	switch outcome := g.resolver.Resolve(ctx, text); outcome.Kind {
	case overflow.Direct:
		return g.finish(ctx, values, outcome.Text)

	case overflow.NeedsSummary:
		token := uuid.NewString()
		g.mu.Lock()
		g.purgeLocked()
		g.waiting[token] = pending{values: values, summary: outcome.Text, expires: g.now().Add(pendingTTL)}
		g.mu.Unlock()
		return &Result{Status: StatusNeedsSummary, Token: token, Summary: outcome.Text}, nil

	default:
		return &Result{Status: StatusSummaryFailed, Reason: outcome.Reason}, nil
	}
}

// Confirm settles a parked submission. Accepting encodes the summary in place
// of the original text; rejecting drops the submission so the form can be
// edited. Either way the token is consumed.
func (g *Generator) Confirm(ctx context.Context, token string, accept bool) (*Result, error) {
	const op = "service.Confirm"

	g.mu.Lock()
	p, ok := g.waiting[token]
	delete(g.waiting, token)
	g.purgeLocked()
	g.mu.Unlock()

	if !ok || g.now().After(p.expires) {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrUnknownToken)
	}
	if !accept {
		return &Result{Status: StatusRejected}, nil
	}
	return g.finish(ctx, p.values, p.summary)
}

func (g *Generator) finish(ctx context.Context, values forms.Values, text string) (*Result, error) {
	artifact, err := g.encoder.Encode(text)
	if err != nil {
		return nil, err
	}

	entry := g.newEntry(values, artifact.DataURL)
	result := &Result{Status: StatusDone, Artifact: &artifact, Entry: &entry}
	if err := g.repo.Append(ctx, entry); err != nil {
		result.Warning = fmt.Sprintf("generated, but history was not saved: %v", err)
	}
	return result, nil
}

func (g *Generator) newEntry(values forms.Values, dataURL string) history.Entry {
	ts := g.now().UTC()

	fields := make(map[string]any, len(values.Data))
	for name, v := range values.Data {
		if t, ok := v.(time.Time); ok {
			fields[name] = t.Format(time.RFC3339)
			continue
		}
		fields[name] = v
	}

	// Templates disagree on the name field; normalize for display.
	fullName, _ := values.Data["fullName"].(string)
	if fullName == "" {
		fullName, _ = values.Data["name"].(string)
	}

	return history.Entry{
		ID:        ts.Format(time.RFC3339),
		Timestamp: ts,
		QRCodeURL: dataURL,
		FormType:  values.FormType,
		FullName:  fullName,
		Fields:    fields,
	}
}

// purgeLocked drops expired confirmations. Caller holds g.mu.
func (g *Generator) purgeLocked() {
	now := g.now()
	for token, p := range g.waiting {
		if now.After(p.expires) {
			delete(g.waiting, token)
		}
	}
}
