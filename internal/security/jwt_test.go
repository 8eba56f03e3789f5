package security

import (
	"errors"
	"testing"
	"time"

	"github.com/Nycles/chat-service/internal/domain"
)

func TestJWTSigner_SignAndVerify(t *testing.T) {
	s := NewJWTSigner([]byte("secret"), "chat-service", time.Hour, 30*time.Second)

	token, err := s.SignAccessToken(42, time.Now())
	if err != nil {
		t.Fatalf("SignAccessToken: %v", err)
	}

	userID, err := s.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != domain.UserID(42) {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestJWTSigner_VerifyExpired(t *testing.T) {
	s := NewJWTSigner([]byte("secret"), "chat-service", time.Hour, 0)

	// выпущен два часа назад при TTL в час
	token, err := s.SignAccessToken(1, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("SignAccessToken: %v", err)
	}

	if _, err := s.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTSigner_VerifyGarbage(t *testing.T) {
	s := NewJWTSigner([]byte("secret"), "chat-service", time.Hour, 0)

	if _, err := s.Verify("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := s.Verify(""); !errors.Is(err, ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestJWTSigner_VerifyWrongSecret(t *testing.T) {
	issuer := NewJWTSigner([]byte("secret-a"), "chat-service", time.Hour, 0)
	verifier := NewJWTSigner([]byte("secret-b"), "chat-service", time.Hour, 0)

	token, err := issuer.SignAccessToken(1, time.Now())
	if err != nil {
		t.Fatalf("SignAccessToken: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTSigner_VerifyWrongIssuer(t *testing.T) {
	issuer := NewJWTSigner([]byte("secret"), "other-service", time.Hour, 0)
	verifier := NewJWTSigner([]byte("secret"), "chat-service", time.Hour, 0)

	token, err := issuer.SignAccessToken(1, time.Now())
	if err != nil {
		t.Fatalf("SignAccessToken: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidIssuer) {
		t.Fatalf("expected ErrInvalidIssuer, got %v", err)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"ok", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"case insensitive scheme", "bearer tok", "tok", nil},
		{"empty", "", "", ErrTokenMissing},
		{"blank", "   ", "", ErrTokenMissing},
		{"no token", "Bearer", "", ErrTokenMalformed},
		{"wrong scheme", "Basic abc", "", ErrTokenMalformed},
		{"three parts", "Bearer a b", "", ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BearerToken: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHashPassword(t *testing.T) {
	cfg := &BcryptConfig{Cost: 4, MinLength: 4}

	hash, err := HashPassword("secret1", cfg)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("hash must differ from plaintext")
	}

	if err := ComparePassword(hash, "secret1"); err != nil {
		t.Fatalf("ComparePassword: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatal("wrong password must not match")
	}

	if _, err := HashPassword("abc", cfg); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}
