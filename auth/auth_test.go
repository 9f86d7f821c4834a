package auth

import (
	"encoding/base64"
	"errors"
	"testing"
)

func fakeJWT(payload string) string {
	segment := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return "header." + segment + ".signature"
}

func TestDecodeUnverified(t *testing.T) {
	token := fakeJWT(`{"sub":"108123456789","email":"ana@example.com"}`)

	identity, err := decodeUnverified(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.GoogleID != "108123456789" {
		t.Errorf("expected sub claim, got %q", identity.GoogleID)
	}
	if identity.Email != "ana@example.com" {
		t.Errorf("expected email claim, got %q", identity.Email)
	}
}

func TestDecodeUnverifiedRejectsBadTokens(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"not a jwt", "just-a-string"},
		{"bad base64", "a.!!!.c"},
		{"bad json", fakeJWT(`{"sub":`)},
		{"missing sub", fakeJWT(`{"email":"ana@example.com"}`)},
		{"missing email", fakeJWT(`{"sub":"108123456789"}`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decodeUnverified(tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
