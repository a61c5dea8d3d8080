package token

import (
	"encoding/base64"
	"testing"
)

func TestGenerate(t *testing.T) {
	token, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("token is not base64url: %v", err)
	}
	if len(decoded) != DefaultLength {
		t.Errorf("token carries %d random bytes, want %d", len(decoded), DefaultLength)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token, err := Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if seen[token] {
			t.Fatal("Generate() produced a duplicate token")
		}
		seen[token] = true
	}
}
