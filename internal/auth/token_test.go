package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestVerifySubject(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	subject, err := VerifySubject(testSecret, token)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if subject != "user-123" {
		t.Errorf("Subject = %q, want %q", subject, "user-123")
	}
}

func TestVerifySubject_WrongSecret(t *testing.T) {
	token := signToken(t, []byte("other-secret"), jwt.MapClaims{"sub": "user-123"})

	if _, err := VerifySubject(testSecret, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifySubject_Expired(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := VerifySubject(testSecret, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifySubject_MissingSubject(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	if _, err := VerifySubject(testSecret, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifySubject_RejectsNonHS256(t *testing.T) {
	// An HS512 token signed with the shared secret must still be rejected:
	// only HS256 is accepted.
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"sub": "user-123"}).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := VerifySubject(testSecret, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestSubjectFromHeader(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{"sub": "user-456"})

	subject, err := SubjectFromHeader(testSecret, "Bearer "+token)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if subject != "user-456" {
		t.Errorf("Subject = %q, want %q", subject, "user-456")
	}
}

func TestSubjectFromHeader_Malformed(t *testing.T) {
	tests := []string{"", "Token abc", "bearer lowercase-scheme"}
	for _, header := range tests {
		if _, err := SubjectFromHeader(testSecret, header); !errors.Is(err, ErrMissingToken) {
			t.Errorf("Header %q: expected ErrMissingToken, got %v", header, err)
		}
	}
}
