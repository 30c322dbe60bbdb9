package providers

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable is returned when a wrapper has no inner provider.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrGroupNotFound is returned when a roster is requested for an unknown group.
	ErrGroupNotFound = errors.New("group not found")
	// ErrMalformedResult is returned for exhibition results not shaped "<n>-<n>".
	ErrMalformedResult = errors.New("malformed exhibition result")
)

// SourceError wraps a failure to read or decode a provider's backing source.
type SourceError struct {
	Provider string
	Source   string
	Err      error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s provider: load %s: %v", e.Provider, e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// AsSourceError attempts to unwrap an error into a SourceError.
func AsSourceError(err error) (*SourceError, bool) {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return srcErr, true
	}
	return nil, false
}
