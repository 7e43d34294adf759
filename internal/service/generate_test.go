package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"qrsecure/internal/encode"
	"qrsecure/internal/errs"
	"qrsecure/internal/forms"
	"qrsecure/internal/history"
	"qrsecure/internal/overflow"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) Append(ctx context.Context, e history.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockRepo) List(ctx context.Context) ([]history.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]history.Entry), args.Error(1)
}

func (m *MockRepo) Capacity() int { return history.DefaultCapacity }

type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func newGenerator(summarizer overflow.Summarizer, repo history.Repository) *Generator {
	resolver := overflow.New(2000, summarizer)
	encoder := encode.New("http://localhost:4001", 300, "medium")
	return NewGenerator(resolver, encoder, repo)
}

func contactRaw() map[string]any {
	return map[string]any{
		"password": "secret1",
		"name":     "Jane Doe",
		"email":    "jane@x.com",
		"phone":    "+19876543210",
		"subject":  "Hi",
		"message":  "1234567890",
	}
}

// oversizedRaw pushes the serialized text past the 2000-character limit.
func oversizedRaw() map[string]any {
	raw := contactRaw()
	raw["message"] = strings.Repeat("long story. ", 200)
	return raw
}

func TestGenerate_Direct(t *testing.T) {
	repo := new(MockRepo)
	summarizer := new(MockSummarizer)
	repo.On("Append", mock.Anything, mock.AnythingOfType("history.Entry")).Return(nil)

	g := newGenerator(summarizer, repo)
	result, err := g.Generate(context.Background(), "contactForm", contactRaw())
	require.NoError(t, err)

	assert.Equal(t, StatusDone, result.Status)
	require.NotNil(t, result.Artifact)
	assert.True(t, strings.HasPrefix(result.Artifact.SourceURL, "http://localhost:4001/view?data="))
	assert.Empty(t, result.Warning)

	require.NotNil(t, result.Entry)
	assert.Equal(t, "contactForm", result.Entry.FormType)
	assert.Equal(t, "Jane Doe", result.Entry.FullName)
	assert.Equal(t, result.Entry.ID, result.Entry.Timestamp.Format(time.RFC3339))

	repo.AssertNumberOfCalls(t, "Append", 1)
	summarizer.AssertNotCalled(t, "Summarize")
}

func TestGenerate_ValidationFailure(t *testing.T) {
	repo := new(MockRepo)
	g := newGenerator(new(MockSummarizer), repo)

	_, err := g.Generate(context.Background(), "contactForm", map[string]any{})

	var vErr *forms.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Fields, 6)
	repo.AssertNotCalled(t, "Append")
}

func TestGenerate_UnknownTemplate(t *testing.T) {
	g := newGenerator(new(MockSummarizer), new(MockRepo))

	_, err := g.Generate(context.Background(), "megaForm", contactRaw())
	assert.ErrorIs(t, err, errs.ErrUnknownTemplate)
}

func TestGenerate_OverflowAcceptSummary(t *testing.T) {
	repo := new(MockRepo)
	summarizer := new(MockSummarizer)
	summarizer.On("Summarize", mock.Anything, mock.Anything).Return("a short summary", nil)
	repo.On("Append", mock.Anything, mock.AnythingOfType("history.Entry")).Return(nil)

	g := newGenerator(summarizer, repo)
	ctx := context.Background()

	result, err := g.Generate(ctx, "contactForm", oversizedRaw())
	require.NoError(t, err)

	assert.Equal(t, StatusNeedsSummary, result.Status)
	assert.Equal(t, "a short summary", result.Summary)
	require.NotEmpty(t, result.Token)

	// Nothing generated or stored before the explicit accept.
	assert.Nil(t, result.Artifact)
	repo.AssertNotCalled(t, "Append")

	confirmed, err := g.Confirm(ctx, result.Token, true)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, confirmed.Status)
	require.NotNil(t, confirmed.Artifact)

	// The QR carries the summary, not the original text.
	payload := strings.TrimPrefix(confirmed.Artifact.SourceURL, "http://localhost:4001/view?data=")
	text, err := encode.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, "a short summary", text)

	repo.AssertNumberOfCalls(t, "Append", 1)

	// The token is consumed.
	_, err = g.Confirm(ctx, result.Token, true)
	assert.ErrorIs(t, err, errs.ErrUnknownToken)
}

func TestGenerate_OverflowReject(t *testing.T) {
	repo := new(MockRepo)
	summarizer := new(MockSummarizer)
	summarizer.On("Summarize", mock.Anything, mock.Anything).Return("a short summary", nil)

	g := newGenerator(summarizer, repo)
	ctx := context.Background()

	result, err := g.Generate(ctx, "contactForm", oversizedRaw())
	require.NoError(t, err)
	require.Equal(t, StatusNeedsSummary, result.Status)

	rejected, err := g.Confirm(ctx, result.Token, false)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
	assert.Nil(t, rejected.Artifact)
	repo.AssertNotCalled(t, "Append")

	_, err = g.Confirm(ctx, result.Token, false)
	assert.ErrorIs(t, err, errs.ErrUnknownToken)
}

func TestGenerate_SummaryFailure(t *testing.T) {
	repo := new(MockRepo)
	summarizer := new(MockSummarizer)
	summarizer.On("Summarize", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))

	g := newGenerator(summarizer, repo)
	result, err := g.Generate(context.Background(), "contactForm", oversizedRaw())
	require.NoError(t, err)

	assert.Equal(t, StatusSummaryFailed, result.Status)
	assert.Equal(t, "quota exceeded", result.Reason)
	repo.AssertNotCalled(t, "Append")
}

func TestGenerate_PersistenceFailureSurfaced(t *testing.T) {
	repo := new(MockRepo)
	repo.On("Append", mock.Anything, mock.AnythingOfType("history.Entry")).Return(errors.New("disk full"))

	g := newGenerator(new(MockSummarizer), repo)
	result, err := g.Generate(context.Background(), "contactForm", contactRaw())
	require.NoError(t, err)

	assert.Equal(t, StatusDone, result.Status)
	require.NotNil(t, result.Artifact)
	assert.Contains(t, result.Warning, "disk full")
}

func TestConfirm_ExpiredToken(t *testing.T) {
	repo := new(MockRepo)
	summarizer := new(MockSummarizer)
	summarizer.On("Summarize", mock.Anything, mock.Anything).Return("a short summary", nil)

	g := newGenerator(summarizer, repo)
	ctx := context.Background()

	result, err := g.Generate(ctx, "contactForm", oversizedRaw())
	require.NoError(t, err)
	require.Equal(t, StatusNeedsSummary, result.Status)

	g.now = func() time.Time { return time.Now().Add(pendingTTL + time.Minute) }

	_, err = g.Confirm(ctx, result.Token, true)
	assert.ErrorIs(t, err, errs.ErrUnknownToken)
	repo.AssertNotCalled(t, "Append")
}

func TestGenerate_FullNameFallback(t *testing.T) {
	repo := new(MockRepo)
	repo.On("Append", mock.Anything, mock.AnythingOfType("history.Entry")).Return(nil)

	g := newGenerator(new(MockSummarizer), repo)

	raw := map[string]any{
		"password":   "secret1",
		"fullName":   "Jane Doe",
		"email":      "jane@x.com",
		"phone":      "+19876543210",
		"position":   "Software Engineer",
		"experience": "5",
		"skills":     "Go, SQL, Docker",
	}
	result, err := g.Generate(context.Background(), "jobApplication", raw)
	require.NoError(t, err)

	// jobApplication uses fullName, contactForm uses name; both normalize.
	assert.Equal(t, "Jane Doe", result.Entry.FullName)
	assert.Equal(t, false, result.Entry.Fields["resumeAttached"])
}
