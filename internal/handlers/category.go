package handlers

import (
	"net/http"
	"strconv"

	"github.com/RachelRYuan/Blogen/internal/services"

	"github.com/gin-gonic/gin"
)

// CategoryHandler serves the category endpoints. Reads are open to any
// API-scoped caller; mutations sit behind the admin authority check in
// the router.
type CategoryHandler struct {
	categories *services.CategoryService
	responder  *Responder
}

func NewCategoryHandler(categories *services.CategoryService, responder *Responder) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		responder:  responder,
	}
}

// List returns a page of categories. GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	categories, pageInfo, err := h.categories.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"categories": toCategoryDTOs(categories),
		"pageInfo":   toPageInfoDTO(pageInfo),
	})
}

// Get returns one category. GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryDTO(category))
}

// Create adds a new category. Admin only. POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "invalid category request", err.Error())
		return
	}

	category, err := h.categories.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryDTO(category))
}

// Update renames a category. Admin only. PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, "invalid category request", err.Error())
		return
	}

	category, err := h.categories.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryDTO(category))
}

func (h *CategoryHandler) pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.responder.BadRequest(c, "invalid category id")
		return 0, false
	}
	return uint(id), true
}
