package session

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenFields are the keys checked, in order, for a bearer token in a login payload.
var tokenFields = []string{"token", "accessToken", "access_token"}

// TokenFrom returns the bearer token carried by a login payload, if any.
// The payload is otherwise treated as opaque.
func TokenFrom(data json.RawMessage) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return ""
	}
	for _, key := range tokenFields {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var token string
		if err := json.Unmarshal(raw, &token); err == nil && token != "" {
			return token
		}
	}
	return ""
}

// TokenExpiry reads the exp claim of a JWT. The signature is not verified:
// the value only sizes the local cookie, the backend remains the authority.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
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
