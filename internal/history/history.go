// Package history defines the persisted record of generated QR codes.
package history

import (
	"context"
	"time"
)

// DefaultCapacity bounds the stored history; the oldest entry is silently
// evicted past it.
const DefaultCapacity = 50

// Entry is one completed generation event. ID doubles as the generation
// timestamp in RFC 3339 form.
type Entry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	QRCodeURL string         `json:"qrCodeUrl"`
	FormType  string         `json:"formType"`
	FullName  string         `json:"fullName"`
	Fields    map[string]any `json:"fields"`
}

// Repository stores generation history newest-first with a hard capacity cap.
// Implementations must guard the read-modify-write of Append so the cap
// invariant holds under concurrent appends.
type Repository interface {
	// Append inserts the entry at the head and truncates the tail past the
	// capacity.
	Append(ctx context.Context, e Entry) error
	// List returns all entries, newest first.
	List(ctx context.Context) ([]Entry, error)
	Capacity() int
}
