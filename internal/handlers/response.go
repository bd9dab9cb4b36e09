package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/RachelRYuan/Blogen/internal/auth"
	"github.com/RachelRYuan/Blogen/internal/services"
	"github.com/RachelRYuan/Blogen/internal/store"

	"github.com/gin-gonic/gin"
)

// Responder writes the JSON error envelope used by every handler.
// In production, internal error details are logged but never echoed
// to the client.
type Responder struct {
	production bool
}

func NewResponder(production bool) *Responder {
	return &Responder{production: production}
}

// apiError is the error envelope returned by all endpoints.
type apiError struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// BadRequest writes a 400 with the given message and optional details.
func (r *Responder) BadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apiError{Error: message, Details: details})
}

// Error maps a service error to its HTTP status and envelope.
func (r *Responder) Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, apiError{Error: "bad credentials"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, apiError{Error: "operation not permitted"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, apiError{Error: "resource not found"})
	case errors.Is(err, services.ErrReplyToReply),
		errors.Is(err, services.ErrUnknownAvatar),
		errors.Is(err, services.ErrUnknownCategory),
		errors.Is(err, store.ErrUsernameConflict),
		errors.Is(err, store.ErrEmailConflict),
		errors.Is(err, store.ErrCategoryConflict),
		errors.Is(err, auth.ErrNoUsableEmail):
		c.JSON(http.StatusBadRequest, apiError{Error: err.Error()})
	default:
		log.Printf("[HTTP] Internal error on %s %s: %v",
			c.Request.Method, c.Request.URL.Path, err)
		if r.production {
			c.JSON(http.StatusInternalServerError, apiError{Error: "internal server error"})
			return
		}
		c.JSON(http.StatusInternalServerError, apiError{Error: err.Error()})
	}
}
