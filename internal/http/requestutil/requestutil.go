package requestutil

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// ErrInvalidSeed is returned for a seed query value that is not an unsigned 64-bit integer.
var ErrInvalidSeed = errors.New("invalid seed")

var (
	requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	runIDPattern     = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	useFallback      atomic.Bool
)

// SanitizeRequestID keeps a well-formed incoming request ID and generates a new one otherwise.
func SanitizeRequestID(incoming string) string {
	if incoming != "" && requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return NewRequestID()
}

// NewRequestID generates a random request ID with a time-based fallback.
func NewRequestID() string {
	var b [8]byte
	if !useFallback.Load() {
		if _, err := rand.Read(b[:]); err == nil {
			return hex.EncodeToString(b[:])
		}
	}
	return hex.EncodeToString([]byte(time.Now().Format("20060102150405.000000000")))
}

// ClientIP returns the first X-Forwarded-For address, or RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	return r.RemoteAddr
}

// ParseSeed reads an optional seed query value. Empty means 0, which lets the service pick.
func ParseSeed(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidSeed
	}
	return seed, nil
}

// RunID unescapes a run ID path segment and reports whether it is well formed.
func RunID(segment string) (string, bool) {
	id, err := url.PathUnescape(segment)
	if err != nil || !runIDPattern.MatchString(id) {
		return "", false
	}
	return id, true
}
