// Package encode turns payload text into a viewer URL and a QR image.
//
// The wire format matches the viewer contract: the text is percent-encoded as
// UTF-8, base64-encoded, and carried in the "data" query parameter of
// {base}/view. Decode reverses it byte-for-byte.
package encode

import (
	"encoding/base64"
	"fmt"
	"image/color"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"qrsecure/internal/errs"
)

// Fixed by design, not user-configurable.
var (
	foreground = color.RGBA{R: 0x0A, G: 0x4D, B: 0x68, A: 0xFF}
	background = color.RGBA{R: 0xF0, G: 0xF8, B: 0xFF, A: 0xFF}
)

type Artifact struct {
	// PNG is the rendered QR image.
	PNG []byte
	// DataURL is the PNG as a data: URL, the form history entries store.
	DataURL string
	// SourceURL is the viewer URL the QR encodes.
	SourceURL string
}

type Encoder struct {
	baseURL string
	size    int
	level   qrcode.RecoveryLevel
}

func New(baseURL string, size int, level string) *Encoder {
	return &Encoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		size:    size,
		level:   parseLevel(level),
	}
}

func parseLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToLower(level) {
	case "low":
		return qrcode.Low
	case "high":
		return qrcode.High
	case "highest":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// Encode renders the QR artifact for the given text. A render failure (the
// payload can exceed the symbol capacity of the chosen recovery level) is
// terminal for the submission.
func (e *Encoder) Encode(text string) (Artifact, error) {
	sourceURL := fmt.Sprintf("%s/view?data=%s", e.baseURL, Payload(text))

	qr, err := qrcode.New(sourceURL, e.level)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", errs.ErrEncodeFailed, err)
	}
	qr.ForegroundColor = foreground
	qr.BackgroundColor = background

	png, err := qr.PNG(e.size)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", errs.ErrEncodeFailed, err)
	}

	return Artifact{
		PNG:       png,
		DataURL:   "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		SourceURL: sourceURL,
	}, nil
}

// Payload percent-encodes the text and base64-encodes the result.
func Payload(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(escape(text)))
}

// Decode reverses Payload. The viewer endpoint uses it to reproduce the exact
// serialized text.
func Decode(payload string) (string, error) {
	// Query parsing turns base64's '+' into spaces; undo it before decoding.
	payload = strings.ReplaceAll(payload, " ", "+")
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode payload: %w", err)
	}
	text, err := url.PathUnescape(string(raw))
	if err != nil {
		return "", fmt.Errorf("decode payload: %w", err)
	}
	return text, nil
}

const upperhex = "0123456789ABCDEF"

// escape percent-encodes every byte outside the unreserved set of
// encodeURIComponent: letters, digits and -_.!~*'().
func escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0F])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
