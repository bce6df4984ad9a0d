package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiry extracts the exp claim without verifying the signature;
// the signing secret lives on the backend. A token that does not parse
// as a JWT has no known expiry and is used as-is.
func tokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenSubject extracts the sub claim (the account email) from an
// access token, "" when absent. Unverified, display/prefill use only.
func TokenSubject(token string) string {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return ""
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
