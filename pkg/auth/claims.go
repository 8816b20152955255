package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/daacooerp/erpclient/pkg/errors"
)

// PeekClaims decodes a JWT's claims without verifying its signature. The
// client holds no signing secret; verification is the server's job. This is
// for display and expiry checks only, never for authorization decisions.
func PeekClaims(token string) (jwt.MapClaims, error) {
	raw := StripBearer(token)
	if raw == "" {
		return nil, errors.ErrInvalidCredential
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidCredential, "malformed token")
	}
	return claims, nil
}

// TokenExpiry returns the token's expiration time, or the zero time when the
// token carries no exp claim.
func TokenExpiry(token string) (time.Time, error) {
	claims, err := PeekClaims(token)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

// IsExpired reports whether the token has an exp claim in the past.
func IsExpired(token string) bool {
	expiry, err := TokenExpiry(token)
	if err != nil || expiry.IsZero() {
		return false
	}
	return time.Now().After(expiry)
}
