package handlers

import (
	"net/http"
	"strconv"

	"github.com/RachelRYuan/Blogen/internal/middleware"
	"github.com/RachelRYuan/Blogen/internal/services"

	"github.com/gin-gonic/gin"
)

// PostHandler serves the authenticated post endpoints.
type PostHandler struct {
	posts     *services.PostService
	responder *Responder
}

func NewPostHandler(posts *services.PostService, responder *Responder) *PostHandler {
	return &PostHandler{
		posts:     posts,
		responder: responder,
	}
}

// List returns a page of parent posts, newest first.
// GET /api/v1/posts?page&limit&category
func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	category := c.Query("category")

	posts, pageInfo, err := h.posts.List(c.Request.Context(), page, pageSize, category)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"posts":    toPostDTOs(posts),
		"pageInfo": toPageInfoDTO(pageInfo),
	})
}

// Get returns one post with its replies. GET /api/v1/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostDTO(post))
}

// Create creates a new parent post authored by the caller.
// POST /api/v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "invalid post request", err.Error())
		return
	}

	principal := middleware.PrincipalFromContext(c)
	post, err := h.posts.Create(c.Request.Context(), principal, services.PostParams{
		Title:        req.Title,
		Text:         req.Text,
		CategoryName: req.CategoryName,
	})
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPostDTO(post))
}

// CreateChild creates a reply under a parent post.
// POST /api/v1/posts/:id
func (h *PostHandler) CreateChild(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "invalid post request", err.Error())
		return
	}

	principal := middleware.PrincipalFromContext(c)
	post, err := h.posts.CreateChild(c.Request.Context(), principal, id, services.PostParams{
		Title:        req.Title,
		Text:         req.Text,
		CategoryName: req.CategoryName,
	})
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPostDTO(post))
}

// Update replaces a post's content. Author-or-admin.
// PUT /api/v1/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "invalid post request", err.Error())
		return
	}

	principal := middleware.PrincipalFromContext(c)
	post, err := h.posts.Update(c.Request.Context(), principal, id, services.PostParams{
		Title:        req.Title,
		Text:         req.Text,
		CategoryName: req.CategoryName,
	})
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostDTO(post))
}

// Delete removes a post and its replies. Author-or-admin.
// DELETE /api/v1/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	principal := middleware.PrincipalFromContext(c)
	if err := h.posts.Delete(c.Request.Context(), principal, id); err != nil {
		h.responder.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Search returns parent posts matching the text in title or body.
// GET /api/v1/posts/search/:text?page&limit
func (h *PostHandler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	posts, pageInfo, err := h.posts.Search(c.Request.Context(), c.Param("text"), page, pageSize)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"posts":    toPostDTOs(posts),
		"pageInfo": toPageInfoDTO(pageInfo),
	})
}

func (h *PostHandler) pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.responder.BadRequest(c, "invalid post id")
		return 0, false
	}
	return uint(id), true
}
