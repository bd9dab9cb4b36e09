package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"time"

	"github.com/RachelRYuan/Blogen/internal/auth"
	"github.com/RachelRYuan/Blogen/internal/metrics"
	"github.com/RachelRYuan/Blogen/internal/middleware"
	"github.com/RachelRYuan/Blogen/internal/services"
	"github.com/RachelRYuan/Blogen/internal/token"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

const (
	sessionOAuthState    = "oauth_state"
	sessionOAuthProvider = "oauth_provider"
)

// LoginHandler serves both login pathways. Form login answers with the
// token in the Authorization header only; the OAuth2 callback serves
// the SPA page and additionally drops the token cookie so the frontend
// can pick it up after the provider redirect.
type LoginHandler struct {
	authorization *services.AuthorizationService
	oauthLogin    *services.OAuth2LoginService
	providers     map[string]*auth.OAuthProvider
	httpClient    *http.Client
	indexFile     string
	rec           metrics.Recorder
	responder     *Responder
}

func NewLoginHandler(
	authorization *services.AuthorizationService,
	oauthLogin *services.OAuth2LoginService,
	providers map[string]*auth.OAuthProvider,
	httpClient *http.Client,
	indexFile string,
	rec metrics.Recorder,
	responder *Responder,
) *LoginHandler {
	return &LoginHandler{
		authorization: authorization,
		oauthLogin:    oauthLogin,
		providers:     providers,
		httpClient:    httpClient,
		indexFile:     indexFile,
		rec:           rec,
		responder:     responder,
	}
}

// FormLogin authenticates a username/password pair.
// POST /login/form -> 200 with Authorization header, empty body.
func (h *LoginHandler) FormLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "invalid login request", err.Error())
		return
	}

	compact, _, err := h.authorization.LoginForm(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.responder.Error(c, err)
		return
	}

	c.Header("Authorization", token.TokenTypeBearer+" "+compact)
	c.Status(http.StatusOK)
}

// RedirectToProvider starts the OAuth2 handshake.
// GET /login/oauth2/:provider
func (h *LoginHandler) RedirectToProvider(c *gin.Context) {
	provider := c.Param("provider")

	oauthProvider, exists := h.providers[provider]
	if !exists {
		h.responder.BadRequest(c, "unsupported OAuth2 provider")
		return
	}

	// Generate state for CSRF protection
	state, err := generateRandomState(32)
	if err != nil {
		h.responder.Error(c, err)
		return
	}

	// Save state in session for callback verification
	session := sessions.Default(c)
	session.Set(sessionOAuthState, state)
	session.Set(sessionOAuthProvider, provider)
	if err := session.Save(); err != nil {
		h.responder.Error(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, oauthProvider.GetAuthURL(state))
}

// ProviderCallback completes the OAuth2 handshake. On success the SPA
// page is served with the Authorization header set and the token
// mirrored into a cookie.
// GET /login/oauth2/callback/:provider
func (h *LoginHandler) ProviderCallback(c *gin.Context) {
	provider := c.Param("provider")
	code := c.Query("code")
	state := c.Query("state")

	oauthProvider, exists := h.providers[provider]
	if !exists {
		h.responder.BadRequest(c, "unsupported OAuth2 provider")
		return
	}

	// Verify state (CSRF protection)
	session := sessions.Default(c)
	savedState := session.Get(sessionOAuthState)
	savedProvider := session.Get(sessionOAuthProvider)
	if savedState == nil || savedProvider == nil {
		h.responder.BadRequest(c, "OAuth2 session expired or invalid")
		return
	}
	if state != savedState.(string) || provider != savedProvider.(string) {
		h.responder.BadRequest(c, "state validation failed")
		return
	}
	session.Delete(sessionOAuthState)
	session.Delete(sessionOAuthProvider)
	_ = session.Save()

	// Use the configured HTTP client for provider calls
	ctx := context.WithValue(c.Request.Context(), oauth2.HTTPClient, h.httpClient)

	apiStart := time.Now()
	providerToken, err := oauthProvider.ExchangeCode(ctx, code)
	if err != nil {
		log.Printf("[OAuth2] Code exchange failed for %s: %v", provider, err)
		h.rec.RecordOAuthCallback(provider, false)
		h.responder.BadRequest(c, "failed to exchange authorization code")
		return
	}

	profile, err := oauthProvider.GetProfile(ctx, providerToken)
	if err != nil {
		log.Printf("[OAuth2] Profile fetch failed for %s: %v", provider, err)
		h.rec.RecordOAuthCallback(provider, false)
		h.responder.Error(c, err)
		return
	}
	h.rec.RecordExternalAPICall(provider, time.Since(apiStart))

	user, err := h.oauthLogin.ResolveLocalUser(c.Request.Context(), profile)
	if err != nil {
		h.rec.RecordOAuthCallback(provider, false)
		h.responder.Error(c, err)
		return
	}

	compact, err := h.oauthLogin.LoginUser(user, provider)
	if err != nil {
		h.rec.RecordOAuthCallback(provider, false)
		h.responder.Error(c, err)
		return
	}
	h.rec.RecordOAuthCallback(provider, true)

	c.Header("Authorization", token.TokenTypeBearer+" "+compact)
	c.SetCookie(middleware.TokenCookieName, compact, 0, "/", "", false, false)
	c.File(h.indexFile)
}

// generateRandomState generates a random state string for OAuth2 CSRF protection
func generateRandomState(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
