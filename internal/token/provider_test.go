package token

import (
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePrivateKeyPEM(t *testing.T, keys Keys) []byte {
	t.Helper()
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(keys.Private),
	})
}

func encodePublicKeyPEM(t *testing.T, keys Keys) []byte {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(keys.Public)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
}

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	keys, err := GenerateKeys()
	require.NoError(t, err)
	return NewProvider(keys, "blogen-test", 1*time.Hour, 0)
}

func TestProvider_IssueAndVerify(t *testing.T) {
	p := newTestProvider(t)

	compact, err := p.Issue("42", []string{"ROLE_USER", "ROLE_API"})
	require.NoError(t, err)
	require.NotEmpty(t, compact)

	claims, err := p.Verify(compact)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, []string{"ROLE_USER", "ROLE_API"}, claims.Scopes)
	assert.Equal(t, "blogen-test", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(1*time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestProvider_Verify_Idempotent(t *testing.T) {
	p := newTestProvider(t)

	compact, err := p.Issue("42", []string{"ROLE_USER"})
	require.NoError(t, err)

	first, err := p.Verify(compact)
	require.NoError(t, err)
	second, err := p.Verify(compact)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestProvider_Verify_Expired(t *testing.T) {
	p := newTestProvider(t)

	compact, err := p.Issue(
		"42",
		[]string{"ROLE_USER"},
		WithIssuedAt(time.Now().Add(-2*time.Hour)),
		WithExpiry(time.Now().Add(-1*time.Hour)),
	)
	require.NoError(t, err)

	_, err = p.Verify(compact)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestProvider_Verify_Leeway(t *testing.T) {
	keys, err := GenerateKeys()
	require.NoError(t, err)
	p := NewProvider(keys, "blogen-test", 1*time.Hour, 2*time.Minute)

	// Expired one minute ago, inside the configured skew window.
	compact, err := p.Issue(
		"42",
		[]string{"ROLE_USER"},
		WithIssuedAt(time.Now().Add(-1*time.Hour)),
		WithExpiry(time.Now().Add(-1*time.Minute)),
	)
	require.NoError(t, err)

	_, err = p.Verify(compact)
	assert.NoError(t, err)
}

func TestProvider_Verify_TamperedPayload(t *testing.T) {
	p := newTestProvider(t)

	compact, err := p.Issue("42", []string{"ROLE_USER"})
	require.NoError(t, err)

	parts := strings.Split(compact, ".")
	require.Len(t, parts, 3)
	// Flip bytes in the payload segment; the signature no longer matches.
	payload := []byte(parts[1])
	payload[0] ^= 0x01
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = p.Verify(tampered)
	assert.Error(t, err)
}

func TestProvider_Verify_WrongKey(t *testing.T) {
	issuer := newTestProvider(t)
	verifier := newTestProvider(t)

	compact, err := issuer.Issue("42", []string{"ROLE_USER"})
	require.NoError(t, err)

	_, err = verifier.Verify(compact)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestProvider_Verify_Malformed(t *testing.T) {
	p := newTestProvider(t)

	for _, compact := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := p.Verify(compact)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", compact)
	}
}

func TestParseKeys_RoundTrip(t *testing.T) {
	keys, err := GenerateKeys()
	require.NoError(t, err)

	privPEM := encodePrivateKeyPEM(t, keys)
	pubPEM := encodePublicKeyPEM(t, keys)

	parsed, err := ParseKeys(privPEM, pubPEM)
	require.NoError(t, err)

	// Tokens signed by the original keys verify against the parsed ones.
	p := NewProvider(keys, "blogen-test", time.Hour, 0)
	v := NewProvider(parsed, "blogen-test", time.Hour, 0)

	compact, err := p.Issue("7", []string{"ROLE_USER"})
	require.NoError(t, err)
	claims, err := v.Verify(compact)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
}

func TestParseKeys_InvalidMaterial(t *testing.T) {
	_, err := ParseKeys([]byte("not a key"), []byte("not a key"))
	assert.ErrorIs(t, err, ErrKeyMaterial)
}
