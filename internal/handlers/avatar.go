package handlers

import (
	"net/http"

	"github.com/RachelRYuan/Blogen/internal/services"

	"github.com/gin-gonic/gin"
)

// AvatarHandler serves the stock avatar catalog.
type AvatarHandler struct {
	avatars   *services.AvatarService
	responder *Responder
}

func NewAvatarHandler(avatars *services.AvatarService, responder *Responder) *AvatarHandler {
	return &AvatarHandler{
		avatars:   avatars,
		responder: responder,
	}
}

// List returns every avatar file name. GET /api/v1/userPrefs/avatars
func (h *AvatarHandler) List(c *gin.Context) {
	names, err := h.avatars.ListFileNames(c.Request.Context())
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatars": names})
}
