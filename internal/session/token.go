package session

import (
	"encoding/json"
	"time"

	"github.com/go-jose/go-jose/v3/jwt"
)

// tokenExpired inspects the JWT locally without verifying the signature.
// The backend remains the authority, this only short-circuits the bootstrap
// round-trip for tokens that are obviously stale. Unparseable tokens and
// tokens without an exp claim are treated as not-expired and left for the
// server to judge.
func tokenExpired(raw string, now time.Time) bool {
	tok, err := jwt.ParseSigned(raw)
	if err != nil {
		return false
	}

	var claims jwt.Claims
	if err := tok.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return false
	}
	if claims.Expiry == nil {
		return false
	}
	return claims.Expiry.Time().Before(now)
}

// tokenSubject extracts the sub claim for logging. Best effort only.
func tokenSubject(raw string) string {
	tok, err := jwt.ParseSigned(raw)
	if err != nil {
		return ""
	}
	var claims map[string]json.RawMessage
	if err := tok.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return ""
	}
	var sub string
	if err := json.Unmarshal(claims["sub"], &sub); err != nil {
		return ""
	}
	return sub
}
