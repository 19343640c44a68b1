// Package token reads the claims of a session token for display and expiry
// checks. Signatures are not verified; the storefront API is the sole
// authority on whether a token is valid.
package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/utafrali/storefront/internal/domain"
)

// ErrMalformed is returned when a token cannot be decoded.
var ErrMalformed = errors.New("malformed token")

// Only the payload segment is read, so the header and signature may hold
// anything. Padded base64 is accepted as well as the raw form.
var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// Claims is the normalized payload of a session token.
type Claims struct {
	ID        string
	Name      string
	Email     string
	Role      string
	StoreID   string
	ExpiresAt *time.Time
}

// User builds the session's user view-object from the claims.
func (c *Claims) User() domain.User {
	return domain.User{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Role:    c.Role,
		StoreID: c.StoreID,
	}
}

// Decode reads the claims of a three-segment token. Any malformed input
// (segment count, base64 or JSON) is logged at debug and yields nil and an
// error wrapping ErrMalformed.
func Decode(raw string) (*Claims, error) {
	mc, err := payload(strings.TrimSpace(raw))
	if err != nil {
		slog.Debug("malformed session token", slog.String("error", err.Error()))
		return nil, err
	}

	c := &Claims{
		ID:      firstString(mc, "id", "_id", "user_id", "sub"),
		Name:    stringClaim(mc, "name"),
		Email:   stringClaim(mc, "email"),
		Role:    stringClaim(mc, "role"),
		StoreID: storeRef(mc),
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		c.ExpiresAt = &t
	}
	return c, nil
}

func payload(raw string) (jwt.MapClaims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformed, len(parts))
	}
	data, err := parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", ErrMalformed, err)
	}
	var mc jwt.MapClaims
	if err := json.Unmarshal(data, &mc); err != nil {
		return nil, fmt.Errorf("%w: payload json: %v", ErrMalformed, err)
	}
	if mc == nil {
		return nil, fmt.Errorf("%w: payload is not an object", ErrMalformed)
	}
	return mc, nil
}

// IsExpired reports whether the token is unusable at now: it fails to decode,
// carries no readable exp claim, or exp is at or before now.
func IsExpired(raw string, now time.Time) bool {
	c, err := Decode(raw)
	if err != nil || c.ExpiresAt == nil {
		return true
	}
	return !c.ExpiresAt.After(now)
}

func stringClaim(mc jwt.MapClaims, key string) string {
	switch v := mc[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

func firstString(mc jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s := stringClaim(mc, k); s != "" {
			return s
		}
	}
	return ""
}

// storeRef collapses storeId, store_id and store (a plain id or a populated
// object carrying _id or id) into a single store identifier.
func storeRef(mc jwt.MapClaims) string {
	if s := firstString(mc, "storeId", "store_id", "store"); s != "" {
		return s
	}
	obj, ok := mc["store"].(map[string]any)
	if !ok {
		return ""
	}
	return firstString(jwt.MapClaims(obj), "_id", "id")
}
