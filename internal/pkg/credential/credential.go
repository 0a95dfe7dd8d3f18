package credential

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Decoder reads the session credential issued by the attendance backend.
// The signature is not verified here; the backend verifies it on every call.
// Only the structure and the exp claim decide local validity.
type Decoder interface {
	Decode(raw string) (jwt.Token, error)
	Claims(ctx context.Context, token jwt.Token) (map[string]interface{}, error)
}

type JWTDecoder struct {
	now func() time.Time
}

func NewJWTDecoder(now func() time.Time) Decoder {
	if now == nil {
		now = time.Now
	}
	return &JWTDecoder{now: now}
}

// Decode returns the parsed token when raw is a three-segment JWT whose exp lies in the future.
func (d *JWTDecoder) Decode(raw string) (jwt.Token, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, session.ErrMissingCredential
	}

	if len(strings.Split(raw, ".")) != 3 {
		return nil, session.ErrMalformedCredential
	}

	token, err := jwt.ParseInsecure([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", session.ErrMalformedCredential, err)
	}

	exp := token.Expiration()
	if exp.IsZero() {
		return nil, fmt.Errorf("%w: exp claim is missing", session.ErrMalformedCredential)
	}

	if !exp.After(d.now()) {
		return nil, session.ErrCredentialExpired
	}

	return token, nil
}

func (d *JWTDecoder) Claims(ctx context.Context, token jwt.Token) (map[string]interface{}, error) {
	if token == nil {
		return nil, session.ErrMissingCredential
	}
	return token.AsMap(ctx)
}

// StringClaim returns the first non-empty string claim among keys.
func StringClaim(claims map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
