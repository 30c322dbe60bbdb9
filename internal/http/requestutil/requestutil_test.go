package requestutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSanitizeRequestID(t *testing.T) {
	if got := SanitizeRequestID("valid-123"); got != "valid-123" {
		t.Fatalf("expected pass-through, got %s", got)
	}
	if got := SanitizeRequestID("bad id"); got == "" || got == "bad id" {
		t.Fatalf("expected sanitized id, got %s", got)
	}
	if got := NewRequestID(); got == "" {
		t.Fatalf("expected generated request id")
	}
	useFallback.Store(true)
	defer useFallback.Store(false)
	if got := NewRequestID(); got == "" {
		t.Fatalf("expected fallback request id when RNG fails")
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	if got := ClientIP(req); got != "1.2.3.4" {
		t.Fatalf("expected first forwarded address, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	if got := ClientIP(req); got != "9.9.9.9:1234" {
		t.Fatalf("expected remote addr fallback, got %s", got)
	}
}

func TestParseSeed(t *testing.T) {
	cases := []struct {
		raw  string
		want uint64
		err  bool
	}{
		{raw: "", want: 0},
		{raw: "  ", want: 0},
		{raw: "42", want: 42},
		{raw: "18446744073709551615", want: ^uint64(0)},
		{raw: "-1", err: true},
		{raw: "abc", err: true},
		{raw: "18446744073709551616", err: true},
	}
	for _, tc := range cases {
		got, err := ParseSeed(tc.raw)
		if tc.err {
			if !errors.Is(err, ErrInvalidSeed) {
				t.Fatalf("ParseSeed(%q) expected ErrInvalidSeed, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseSeed(%q) = %d, %v; want %d", tc.raw, got, err, tc.want)
		}
	}
}

func TestRunID(t *testing.T) {
	if id, ok := RunID("3f2a-9c"); !ok || id != "3f2a-9c" {
		t.Fatalf("expected valid id, got %q %v", id, ok)
	}
	for _, bad := range []string{"", "a%20b", "a/b", "%zz", "../x"} {
		if _, ok := RunID(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
