package session

import (
	"context"
	"strings"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/profile"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

type rawTokenKey struct{}

// LoginRequest is forwarded to the backend as is.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validator.Struct(r)
}

// LoginResult is what the backend hands back on a successful login.
type LoginResult struct {
	Token   string
	Profile profile.Profile
}

// WithRawToken stores the undecoded credential for outbound backend calls.
func WithRawToken(ctx context.Context, raw string) context.Context {
	return context.WithValue(ctx, rawTokenKey{}, raw)
}

// RawToken returns the credential placed by WithRawToken, or "".
func RawToken(ctx context.Context) string {
	raw, _ := ctx.Value(rawTokenKey{}).(string)
	return raw
}

// Subject returns the user id carried by the verified credential in ctx, or "".
func Subject(ctx context.Context) string {
	_, claims, _ := jwtauth.FromContext(ctx)
	for _, key := range []string{"employeeId", "id", "_id", "userId", "sub"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
