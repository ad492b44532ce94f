// ABOUTME: Access token expiry inspection without signature verification
// ABOUTME: The backend stays the authority on validity; this is display/logging only

package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the exp claim from a JWT without verifying the
// signature. Returns false for opaque or malformed tokens.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// NeedsRefresh reports whether the token expires within leeway. Tokens
// whose expiry cannot be read never report true; the 401 path handles
// them.
func NeedsRefresh(token string, leeway time.Duration) bool {
	expiry, ok := TokenExpiry(token)
	if !ok {
		return false
	}
	return time.Until(expiry) <= leeway
}
