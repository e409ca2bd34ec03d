// File path: internal/corpus/errors.go
package corpus

import "errors"

// ErrDataLoad indicates that a required primary table was missing or empty.
// It is fatal: initialization must abort when it is returned.
var ErrDataLoad = errors.New("corpus: required source data missing or empty")
