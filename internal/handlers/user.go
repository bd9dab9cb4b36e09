package handlers

import (
	"net/http"
	"strconv"

	"github.com/RachelRYuan/Blogen/internal/middleware"
	"github.com/RachelRYuan/Blogen/internal/services"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the authenticated user endpoints.
type UserHandler struct {
	users     *services.UserService
	posts     *services.PostService
	responder *Responder
}

func NewUserHandler(
	users *services.UserService,
	posts *services.PostService,
	responder *Responder,
) *UserHandler {
	return &UserHandler{
		users:     users,
		posts:     posts,
		responder: responder,
	}
}

// List returns all users. GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": toUserDTOs(users)})
}

// Get returns one user. GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTO(user))
}

// Update modifies a user's profile. Self-or-admin.
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "invalid user update request", err.Error())
		return
	}

	principal := middleware.PrincipalFromContext(c)
	user, err := h.users.Update(c.Request.Context(), principal, id, services.UpdateParams{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		UserName:       req.UserName,
		AvatarFileName: req.AvatarFileName,
	})
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTO(user))
}

// ChangePassword replaces a user's password. Self-or-admin.
// PUT /api/v1/users/:id/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "invalid password request", err.Error())
		return
	}

	principal := middleware.PrincipalFromContext(c)
	if err := h.users.ChangePassword(c.Request.Context(), principal, id, req.Password); err != nil {
		h.responder.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Posts returns a user's parent posts, paged.
// GET /api/v1/users/:id/posts?page&limit&category
func (h *UserHandler) Posts(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	category := c.Query("category")

	posts, pageInfo, err := h.posts.ListByUser(c.Request.Context(), id, page, pageSize, category)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"posts":    toPostDTOs(posts),
		"pageInfo": toPageInfoDTO(pageInfo),
	})
}

func (h *UserHandler) pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.responder.BadRequest(c, "invalid user id")
		return 0, false
	}
	return uint(id), true
}
