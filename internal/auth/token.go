// Package auth verifies bearer tokens issued by the external identity
// provider. Tokens are HS256-signed with a shared secret; verification
// yields the subject identifier used to scope education records.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingToken means the Authorization header was absent or not a
// bearer scheme.
var ErrMissingToken = errors.New("missing or invalid Authorization header")

// ErrInvalidToken means the token failed signature or claims validation.
var ErrInvalidToken = errors.New("invalid or expired token")

// SubjectFromHeader extracts the bearer token from an Authorization header
// value and returns its verified subject claim.
func SubjectFromHeader(secret []byte, header string) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", ErrMissingToken
	}
	return VerifySubject(secret, strings.TrimPrefix(header, prefix))
}

// VerifySubject parses and validates an HS256 token, returning the subject.
// The signing method is pinned to HS256 to prevent algorithm confusion; the
// audience claim is not checked, matching the identity provider's tokens.
func VerifySubject(secret []byte, tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v (only HS256 allowed)", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}
