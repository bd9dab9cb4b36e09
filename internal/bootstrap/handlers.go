package bootstrap

import (
	"net/http"

	"github.com/RachelRYuan/Blogen/internal/auth"
	"github.com/RachelRYuan/Blogen/internal/config"
	"github.com/RachelRYuan/Blogen/internal/handlers"
	"github.com/RachelRYuan/Blogen/internal/metrics"
	"github.com/RachelRYuan/Blogen/internal/services"
)

// handlerSet groups the HTTP handlers registered on the router
type handlerSet struct {
	auth     *handlers.AuthHandler
	login    *handlers.LoginHandler
	user     *handlers.UserHandler
	post     *handlers.PostHandler
	category *handlers.CategoryHandler
	avatar   *handlers.AvatarHandler
}

func initializeHandlers(
	cfg *config.Config,
	authorization *services.AuthorizationService,
	oauthLogin *services.OAuth2LoginService,
	users *services.UserService,
	posts *services.PostService,
	categories *services.CategoryService,
	avatars *services.AvatarService,
	oauthProviders map[string]*auth.OAuthProvider,
	oauthHTTPClient *http.Client,
	rec metrics.Recorder,
) handlerSet {
	responder := handlers.NewResponder(cfg.IsProduction)

	return handlerSet{
		auth: handlers.NewAuthHandler(authorization, posts, responder),
		login: handlers.NewLoginHandler(
			authorization,
			oauthLogin,
			oauthProviders,
			oauthHTTPClient,
			cfg.IndexFile,
			rec,
			responder,
		),
		user:     handlers.NewUserHandler(users, posts, responder),
		post:     handlers.NewPostHandler(posts, responder),
		category: handlers.NewCategoryHandler(categories, responder),
		avatar:   handlers.NewAvatarHandler(avatars, responder),
	}
}
