package content

import "errors"

// ErrInvalidInput is returned when a required request field is missing or
// malformed. Language errors wrap language.ErrUnsupported instead.
var ErrInvalidInput = errors.New("invalid input")
