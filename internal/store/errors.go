package store

import "errors"

// ErrMissingID is returned when a result without an ID is saved.
var ErrMissingID = errors.New("result id required")
