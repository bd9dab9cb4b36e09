package bootstrap

import (
	"github.com/RachelRYuan/Blogen/internal/auth"
	"github.com/RachelRYuan/Blogen/internal/cache"
	"github.com/RachelRYuan/Blogen/internal/config"
	"github.com/RachelRYuan/Blogen/internal/metrics"
	"github.com/RachelRYuan/Blogen/internal/models"
	"github.com/RachelRYuan/Blogen/internal/services"
	"github.com/RachelRYuan/Blogen/internal/store"
	"github.com/RachelRYuan/Blogen/internal/token"
)

// initializeServices wires the business services on top of the
// infrastructure layer.
func initializeServices(
	cfg *config.Config,
	db *store.Store,
	tokens *token.Provider,
	userCache cache.Cache[models.User],
	rec metrics.Recorder,
) (
	*services.AuthorizationService,
	*services.OAuth2LoginService,
	*services.UserService,
	*services.PostService,
	*services.CategoryService,
	*services.AvatarService,
) {
	local := auth.NewLocalAuthenticator(db)

	return services.NewAuthorizationService(db, local, tokens, rec, cfg.DefaultAvatar),
		services.NewOAuth2LoginService(db, tokens, rec, cfg.DefaultAvatar),
		services.NewUserService(db, userCache, cfg.UserCacheTTL),
		services.NewPostService(db, rec, cfg.LatestPostsLimit),
		services.NewCategoryService(db),
		services.NewAvatarService(db)
}
