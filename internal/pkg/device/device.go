package device

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

type contextKey struct{}

var ErrInvalidCookie = errors.New("device cookie is invalid")

// Signer issues and verifies device cookies of the form "<id>.<mac>".
type Signer struct {
	key []byte
}

func NewSigner(secret string) *Signer {
	key := blake2b.Sum256([]byte(secret))
	return &Signer{key: key[:]}
}

// Issue creates a new device id and its signed cookie value.
func (s *Signer) Issue() (id string, value string, err error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", "", err
	}
	id = u.String()
	return id, s.Sign(id), nil
}

func (s *Signer) Sign(id string) string {
	return id + "." + s.mac(id)
}

// Verify returns the device id carried by a signed cookie value.
func (s *Signer) Verify(value string) (string, error) {
	id, mac, ok := strings.Cut(value, ".")
	if !ok || id == "" || mac == "" {
		return "", ErrInvalidCookie
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrInvalidCookie
	}
	if subtle.ConstantTimeCompare([]byte(mac), []byte(s.mac(id))) != 1 {
		return "", ErrInvalidCookie
	}
	return id, nil
}

func (s *Signer) mac(id string) string {
	h, _ := blake2b.New256(s.key)
	h.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}
