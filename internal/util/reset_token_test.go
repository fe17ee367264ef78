package util

import (
	"bytes"
	"net/url"
	"testing"
)

func TestNewResetToken(t *testing.T) {
	first, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken returned error: %v", err)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(first))
	}
	if url.PathEscape(first) != first {
		t.Fatalf("expected token to be URL-safe, got %q", first)
	}

	second, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken returned error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct tokens")
	}
}

func TestHashResetToken(t *testing.T) {
	digest := HashResetToken("some-token")
	if len(digest) != 32 {
		t.Fatalf("expected 32-byte digest, got %d", len(digest))
	}
	if !bytes.Equal(digest, HashResetToken("some-token")) {
		t.Fatalf("expected digest to be deterministic")
	}
	if bytes.Equal(digest, HashResetToken("other-token")) {
		t.Fatalf("expected distinct inputs to hash differently")
	}
}
