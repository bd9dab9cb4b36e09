package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// OAuth2 provider names
const (
	ProviderGitHub = "github"
	ProviderGoogle = "google"
)

// OAuthProviderConfig contains configuration for an OAuth2 provider
type OAuthProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Profile is the verified user profile returned by an OAuth2 provider.
// Provider access tokens are used only to fetch this profile and are
// never persisted.
type Profile struct {
	ProviderUserID string // Provider's user id
	Username       string // Provider's login name
	Email          string // Primary email (required to bind a local account)
	FullName       string
	AvatarURL      string
}

// OAuthProvider completes the authorization-code handshake with a single
// third-party identity provider and fetches the user's profile.
type OAuthProvider struct {
	config   *oauth2.Config
	provider string
}

// NewGitHubProvider creates a new GitHub OAuth2 provider
func NewGitHubProvider(cfg OAuthProviderConfig) *OAuthProvider {
	return &OAuthProvider{
		provider: ProviderGitHub,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     github.Endpoint,
		},
	}
}

// NewGoogleProvider creates a new Google OAuth2 provider
func NewGoogleProvider(cfg OAuthProviderConfig) *OAuthProvider {
	return &OAuthProvider{
		provider: ProviderGoogle,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
	}
}

// GetAuthURL returns the provider's authorization URL for the handshake.
func (p *OAuthProvider) GetAuthURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for an access token.
func (p *OAuthProvider) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.config.Exchange(ctx, code)
}

// GetProfile retrieves the authenticated user's profile from the provider.
func (p *OAuthProvider) GetProfile(
	ctx context.Context,
	token *oauth2.Token,
) (*Profile, error) {
	switch p.provider {
	case ProviderGitHub:
		return p.getGitHubProfile(ctx, token)
	case ProviderGoogle:
		return p.getGoogleProfile(ctx, token)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, p.provider)
	}
}

// Name returns the provider name
func (p *OAuthProvider) Name() string {
	return p.provider
}

// DisplayName returns the human-readable provider name
func (p *OAuthProvider) DisplayName() string {
	switch p.provider {
	case ProviderGitHub:
		return "GitHub"
	case ProviderGoogle:
		return "Google"
	default:
		return p.provider
	}
}

// GitHub profile structures
type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func (p *OAuthProvider) getGitHubProfile(
	ctx context.Context,
	token *oauth2.Token,
) (*Profile, error) {
	client := p.config.Client(ctx, token)

	var user githubUser
	if err := getJSON(ctx, client, "https://api.github.com/user", &user); err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	// If the email is not public, fetch from the emails endpoint
	if user.Email == "" {
		email, err := p.getGitHubPrimaryEmail(ctx, client)
		if err != nil {
			return nil, fmt.Errorf("failed to get user email: %w", err)
		}
		user.Email = email
	}

	return &Profile{
		ProviderUserID: fmt.Sprintf("%d", user.ID),
		Username:       user.Login,
		Email:          user.Email,
		FullName:       user.Name,
		AvatarURL:      user.AvatarURL,
	}, nil
}

func (p *OAuthProvider) getGitHubPrimaryEmail(
	ctx context.Context,
	client *http.Client,
) (string, error) {
	var emails []githubEmail
	if err := getJSON(ctx, client, "https://api.github.com/user/emails", &emails); err != nil {
		return "", err
	}

	for _, email := range emails {
		if email.Primary && email.Verified {
			return email.Email, nil
		}
	}
	for _, email := range emails {
		if email.Verified {
			return email.Email, nil
		}
	}
	return "", nil
}

// Google profile structure (OpenID Connect userinfo)
type googleUser struct {
	Sub           string `json:"sub"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Picture       string `json:"picture"`
}

func (p *OAuthProvider) getGoogleProfile(
	ctx context.Context,
	token *oauth2.Token,
) (*Profile, error) {
	client := p.config.Client(ctx, token)

	var user googleUser
	err := getJSON(ctx, client, "https://openidconnect.googleapis.com/v1/userinfo", &user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	email := user.Email
	if !user.EmailVerified {
		email = ""
	}

	return &Profile{
		ProviderUserID: user.Sub,
		Username:       user.Email,
		Email:          email,
		FullName:       user.Name,
		AvatarURL:      user.Picture,
	}, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("provider API error: %s - %s", resp.Status, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
