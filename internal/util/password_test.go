package util

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	digest, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if len(digest) == 0 {
		t.Fatalf("expected digest to be populated")
	}
	if !CheckPassword("s3cret-pass", digest) {
		t.Fatalf("expected password verification to succeed")
	}
	if CheckPassword("wrong-pass", digest) {
		t.Fatalf("expected password verification to fail for wrong password")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same-secret")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("same-secret")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if string(first) == string(second) {
		t.Fatalf("expected per-secret salting to produce distinct digests")
	}
}

func TestHashPasswordEmptyInput(t *testing.T) {
	if _, err := HashPassword("   "); err == nil {
		t.Fatalf("expected error when password empty")
	}
}

func TestCheckPasswordMalformedDigest(t *testing.T) {
	if CheckPassword("secret", nil) {
		t.Fatalf("expected verification to fail for empty digest")
	}
	if CheckPassword("secret", []byte("not-a-bcrypt-digest")) {
		t.Fatalf("expected verification to fail for malformed digest")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); err == nil {
		t.Fatalf("expected error for short password")
	}
	if err := ValidatePassword("long-enough-pass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
