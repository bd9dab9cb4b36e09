package token

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// Keys holds the process-wide RSA signing keypair. The private key signs
// issued tokens; verification needs only the public key, so a deployment
// split into issuer and resource services shares just the public half.
// Keys are loaded once at startup and never mutated.
type Keys struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// ParseKeys parses a PEM-encoded RSA keypair. The private key may be in
// PKCS#1 or PKCS#8 form, the public key in PKIX or PKCS#1 form.
func ParseKeys(privatePEM, publicPEM []byte) (Keys, error) {
	priv, err := parsePrivateKey(privatePEM)
	if err != nil {
		return Keys{}, err
	}
	pub, err := parsePublicKey(publicPEM)
	if err != nil {
		return Keys{}, err
	}
	return Keys{Private: priv, Public: pub}, nil
}

// GenerateKeys creates an ephemeral RSA keypair. Used for development and
// tests; production deployments configure persistent PEM key material.
func GenerateKeys() (Keys, error) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return Keys{}, fmt.Errorf("%w: %v", ErrKeyMaterial, err)
	}
	return Keys{Private: priv, Public: &priv.PublicKey}, nil
}

func parsePrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block in private key", ErrKeyMaterial)
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyMaterial, err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: private key is not RSA", ErrKeyMaterial)
	}
	return key, nil
}

func parsePublicKey(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block in public key", ErrKeyMaterial)
	}

	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyMaterial, err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: public key is not RSA", ErrKeyMaterial)
	}
	return key, nil
}
