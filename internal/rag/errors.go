// File path: internal/rag/errors.go
package rag

import "errors"

var (
	// ErrNotInitialized is returned for queries issued before the service
	// finished a successful initialization. Reported to the caller; never
	// fatal to the process.
	ErrNotInitialized = errors.New("rag: service not initialized")

	// ErrInvalidQuery is returned for empty, too-short, or disallowed
	// query content.
	ErrInvalidQuery = errors.New("rag: invalid query")

	// ErrUnsupportedLanguage is returned when a translation target code is
	// outside the supported set; it is rejected before any collaborator
	// call.
	ErrUnsupportedLanguage = errors.New("rag: unsupported target language")
)
