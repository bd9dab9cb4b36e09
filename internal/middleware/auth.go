package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/RachelRYuan/Blogen/internal/authz"
	"github.com/RachelRYuan/Blogen/internal/metrics"
	"github.com/RachelRYuan/Blogen/internal/token"

	"github.com/gin-gonic/gin"
)

const (
	// principalKey is the gin context key holding the verified principal
	principalKey = "principal"

	// TokenCookieName is the cookie checked when no Authorization header
	// is present. The OAuth2 callback sets it so the SPA can pick the
	// token up after the provider redirect.
	TokenCookieName = "token"
)

// ExtractToken pulls the compact token from the Authorization header,
// falling back to the token cookie. Returns "" when neither carries one.
func ExtractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, token.TokenTypeBearer+" ") {
		return strings.TrimPrefix(authHeader, token.TokenTypeBearer+" ")
	}
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie != "" {
		return cookie
	}
	return ""
}

// RequestGate verifies the access token on every request that passes
// through it and attaches the resulting principal to the context.
// All verification failures collapse to a single 401 response so the
// reason a token was rejected never leaks to the caller.
func RequestGate(tokens *token.Provider, rec metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ExtractToken(c)
		if raw == "" {
			unauthorized(c)
			return
		}

		start := time.Now()
		claims, err := tokens.Verify(raw)
		duration := time.Since(start)

		if err != nil {
			switch {
			case errors.Is(err, token.ErrExpired):
				rec.RecordTokenValidation("expired", duration)
			default:
				rec.RecordTokenValidation("invalid", duration)
			}
			unauthorized(c)
			return
		}
		rec.RecordTokenValidation("valid", duration)

		authorities := make([]string, 0, len(claims.Scopes))
		for _, scope := range claims.Scopes {
			authorities = append(authorities, authz.AuthorityForRole(scope))
		}

		c.Set(principalKey, &authz.Principal{
			SubjectID:   claims.Subject,
			Authorities: authorities,
		})
		c.Next()
	}
}

// RequireAuthority rejects authenticated requests whose principal lacks
// the given authority. Must run after RequestGate.
func RequireAuthority(authority string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFromContext(c)
		if principal == nil {
			unauthorized(c)
			return
		}
		if !principal.HasAuthority(authority) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "insufficient privileges",
			})
			return
		}
		c.Next()
	}
}

// PrincipalFromContext returns the verified principal set by RequestGate,
// or nil when the request did not pass through the gate.
func PrincipalFromContext(c *gin.Context) *authz.Principal {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	principal, ok := value.(*authz.Principal)
	if !ok {
		return nil
	}
	return principal
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "unauthorized",
		"message": "invalid or missing access token",
	})
}
