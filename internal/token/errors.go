package token

import "errors"

var (
	// ErrTokenGeneration indicates token signing failed
	ErrTokenGeneration = errors.New("failed to generate token")

	// ErrMalformed indicates the compact token could not be parsed
	ErrMalformed = errors.New("malformed token")

	// ErrExpired indicates the token's expiry has passed
	ErrExpired = errors.New("token expired")

	// ErrInvalidSignature indicates the signature does not verify against
	// the public key (covers tampering and wrong-key tokens)
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrKeyMaterial indicates the configured keypair could not be parsed
	ErrKeyMaterial = errors.New("invalid signing key material")
)
