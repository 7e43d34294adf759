// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrUnknownTemplate indicates a form type outside the registry's closed set.
	ErrUnknownTemplate = errors.New("unknown form template")

	// ErrUnknownToken indicates a missing, expired or already-consumed confirmation token.
	ErrUnknownToken = errors.New("unknown confirmation token")

	// ErrEncodeFailed indicates the QR symbol could not be rendered for the payload.
	// Terminal for the submission: no retry is performed.
	ErrEncodeFailed = errors.New("qr encoding failed")
)
