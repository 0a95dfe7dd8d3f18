package credential

import (
	"context"
	"testing"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func mintToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	_, token, err := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil).Encode(claims)
	require.NoError(t, err)
	return token
}

func TestJWTDecoder_Valid(t *testing.T) {
	dec := NewJWTDecoder(func() time.Time { return fixedNow })
	raw := mintToken(t, map[string]interface{}{
		"id":    "EMP042",
		"email": "asha@example.com",
		"exp":   fixedNow.Add(time.Hour).Unix(),
	})

	token, err := dec.Decode(raw)
	require.NoError(t, err)

	claims, err := dec.Claims(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "EMP042", StringClaim(claims, "employeeId", "id"))
}

func TestJWTDecoder_Expired(t *testing.T) {
	dec := NewJWTDecoder(func() time.Time { return fixedNow })

	past := mintToken(t, map[string]interface{}{"exp": fixedNow.Add(-time.Minute).Unix()})
	_, err := dec.Decode(past)
	assert.ErrorIs(t, err, session.ErrCredentialExpired)

	exact := mintToken(t, map[string]interface{}{"exp": fixedNow.Unix()})
	_, err = dec.Decode(exact)
	assert.ErrorIs(t, err, session.ErrCredentialExpired, "exp must be strictly after now")
}

func TestJWTDecoder_MissingAndMalformed(t *testing.T) {
	dec := NewJWTDecoder(func() time.Time { return fixedNow })

	_, err := dec.Decode("")
	assert.ErrorIs(t, err, session.ErrMissingCredential)

	_, err = dec.Decode("   ")
	assert.ErrorIs(t, err, session.ErrMissingCredential)

	for _, raw := range []string{"abc", "abc.def", "a.b.c.d", "eyJhbGciOiJIUzI1NiJ9.!!!.sig"} {
		_, err = dec.Decode(raw)
		assert.ErrorIs(t, err, session.ErrMalformedCredential, raw)
	}

	noExp := mintToken(t, map[string]interface{}{"id": "EMP042"})
	_, err = dec.Decode(noExp)
	assert.ErrorIs(t, err, session.ErrMalformedCredential)
}

func TestStringClaim(t *testing.T) {
	claims := map[string]interface{}{"_id": "", "id": "x1", "n": 3}
	assert.Equal(t, "x1", StringClaim(claims, "_id", "id"))
	assert.Equal(t, "", StringClaim(claims, "n", "missing"))
}
