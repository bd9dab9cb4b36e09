package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const TokenTypeBearer = "Bearer"

// Claims is the verified content of an issued token.
type Claims struct {
	Subject   string   // Identity id, as string
	Scopes    []string // role claims, e.g. ROLE_USER
	IssuedAt  time.Time
	ExpiresAt time.Time
	Issuer    string
}

// Provider issues and verifies RS256-signed JWTs. It is stateless apart
// from the immutable keypair and safe for concurrent use.
type Provider struct {
	keys   Keys
	issuer string
	ttl    time.Duration
	leeway time.Duration
}

// NewProvider creates a token provider around an injected keypair. ttl is
// the default validity window for issued tokens; leeway is the accepted
// clock skew during verification (zero unless explicitly configured).
func NewProvider(keys Keys, issuer string, ttl, leeway time.Duration) *Provider {
	return &Provider{
		keys:   keys,
		issuer: issuer,
		ttl:    ttl,
		leeway: leeway,
	}
}

type issueOptions struct {
	issuedAt time.Time
	expiry   time.Time
}

// IssueOption overrides issuance defaults.
type IssueOption func(*issueOptions)

// WithIssuedAt sets an explicit issuance time.
func WithIssuedAt(t time.Time) IssueOption {
	return func(o *issueOptions) { o.issuedAt = t }
}

// WithExpiry sets an explicit expiry time.
func WithExpiry(t time.Time) IssueOption {
	return func(o *issueOptions) { o.expiry = t }
}

// Issue creates a signed compact token for the given subject carrying the
// given scope claims. Defaults: issued now, expires after the provider TTL.
func (p *Provider) Issue(subject string, scopes []string, opts ...IssueOption) (string, error) {
	o := issueOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.issuedAt.IsZero() {
		o.issuedAt = time.Now()
	}
	if o.expiry.IsZero() {
		o.expiry = o.issuedAt.Add(p.ttl)
	}

	claims := jwt.MapClaims{
		"sub":   subject,
		"scope": scopes,
		"iat":   o.issuedAt.Unix(),
		"exp":   o.expiry.Unix(),
		"iss":   p.issuer,
		"jti":   uuid.New().String(),
	}

	compact, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(p.keys.Private)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return compact, nil
}

// Verify checks the compact token's signature against the public key and
// its expiry against the current time. Failures are classified as
// ErrMalformed, ErrExpired or ErrInvalidSignature; callers at the HTTP
// boundary must collapse all three into a single unauthenticated outcome.
func (p *Provider) Verify(compact string) (*Claims, error) {
	parsed, err := jwt.Parse(
		compact,
		func(t *jwt.Token) (any, error) {
			return p.keys.Public, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithLeeway(p.leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}

	subject, _ := mapClaims["sub"].(string)
	if subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrMalformed)
	}

	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing expiry", ErrMalformed)
	}

	claims := &Claims{
		Subject:   subject,
		Scopes:    extractScopes(mapClaims),
		ExpiresAt: time.Unix(int64(exp), 0),
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	claims.Issuer, _ = mapClaims["iss"].(string)

	return claims, nil
}

// TTL returns the default validity window for issued tokens.
func (p *Provider) TTL() time.Duration {
	return p.ttl
}

func extractScopes(claims jwt.MapClaims) []string {
	raw, ok := claims["scope"].([]any)
	if !ok {
		return nil
	}
	scopes := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			scopes = append(scopes, s)
		}
	}
	return scopes
}
