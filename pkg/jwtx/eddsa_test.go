package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, s Signer, issuer string) *EdDSAVerifier {
	t.Helper()

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(s))
	return NewVerifierEdDSA(keys, issuer)
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralSigner()
	require.NoError(t, err)

	claims := NewSessionClaims(
		"user-123", "alice", "ADMIN",
		"accounts-test", time.Hour, time.Now().UTC(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.Equal(t, 3, len(strings.Split(token, ".")))

	verified, err := newTestVerifier(t, signer, "accounts-test").Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", verified.Subject)
	require.Equal(t, "alice", verified.Username)
	require.Equal(t, "ADMIN", verified.Role)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralSigner()
	require.NoError(t, err)

	claims := NewSessionClaims(
		"user-123", "alice", "USER",
		"accounts-test", time.Hour, time.Now().UTC().Add(-2*time.Hour),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = newTestVerifier(t, signer, "accounts-test").Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralSigner()
	require.NoError(t, err)

	claims := NewSessionClaims(
		"user-123", "alice", "USER",
		"someone-else", time.Hour, time.Now().UTC(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = newTestVerifier(t, signer, "accounts-test").Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralSigner()
	require.NoError(t, err)

	claims := NewSessionClaims(
		"user-123", "alice", "USER",
		"accounts-test", time.Hour, time.Now().UTC(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	_, err = newTestVerifier(t, signer, "accounts-test").Verify(tampered)
	require.Error(t, err)
}

func TestVerifyRejectsUnknownKey(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralSigner()
	require.NoError(t, err)

	other, err := NewEphemeralSigner()
	require.NoError(t, err)

	claims := NewSessionClaims(
		"user-123", "alice", "USER",
		"accounts-test", time.Hour, time.Now().UTC(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	// Verifier only knows the other signer's key.
	_, err = newTestVerifier(t, other, "accounts-test").Verify(token)
	require.Error(t, err)
}

func TestKeySet(t *testing.T) {
	t.Parallel()

	keys := NewKeySet()
	require.False(t, keys.IsReady())

	signer, err := NewEphemeralSigner()
	require.NoError(t, err)
	require.NoError(t, keys.AddSigner(signer))

	require.True(t, keys.IsReady())

	pub, err := keys.Get(signer.KID())
	require.NoError(t, err)
	require.NotNil(t, pub)

	_, err = keys.Get("nope")
	require.ErrorIs(t, err, ErrNoKey)

	jwks := keys.PublicJWKS()
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "OKP", jwks.Keys[0].Kty)
	require.Equal(t, "Ed25519", jwks.Keys[0].Crv)
	require.Equal(t, signer.KID(), jwks.Keys[0].Kid)
}
