package handlers

import (
	"net/http"
	"strconv"

	"github.com/RachelRYuan/Blogen/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the unauthenticated API surface: signup, the
// landing-page post feed and username availability checks.
type AuthHandler struct {
	authorization *services.AuthorizationService
	posts         *services.PostService
	responder     *Responder
}

func NewAuthHandler(
	authorization *services.AuthorizationService,
	posts *services.PostService,
	responder *Responder,
) *AuthHandler {
	return &AuthHandler{
		authorization: authorization,
		posts:         posts,
		responder:     responder,
	}
}

// Signup registers a new account. POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "invalid signup request", err.Error())
		return
	}

	user, err := h.authorization.SignUp(c.Request.Context(), services.SignUpParams{
		UserName:       req.UserName,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		AvatarFileName: req.AvatarFileName,
	})
	if err != nil {
		h.responder.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserDTO(user))
}

// LatestPosts returns the newest parent posts for the landing page.
// GET /api/v1/auth/latestPosts?limit
func (h *AuthHandler) LatestPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	posts, err := h.posts.Latest(c.Request.Context(), limit)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": toPostDTOs(posts)})
}

// UserNameExists reports whether a login name is taken.
// GET /api/v1/auth/username/:name
func (h *AuthHandler) UserNameExists(c *gin.Context) {
	exists, err := h.authorization.UserNameExists(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, exists)
}
