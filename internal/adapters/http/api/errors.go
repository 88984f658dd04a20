package api

import "errors"

// Sentinel kinds for API errors. Their messages are the exact wire
// payloads written by writeError.
var (
	ErrBadBodyParam      = errors.New("bad body param")
	ErrUnsupportedMethod = errors.New("unsupported method")
)
