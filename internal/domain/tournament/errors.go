package tournament

import "errors"

// ErrNotFound is returned by result stores when no run has the requested ID.
var ErrNotFound = errors.New("tournament not found")
