package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"survey-backend/internal/shared/server/middleware"
	"survey-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches routes callable without an identity.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.register)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

func (h *Handler) register(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid registration payload", nil)
		return
	}
	user, err := h.Svc.Register(c.Request.Context(), body.Username)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_input", "username is required", nil)
		case errors.Is(err, ErrUsernameTaken):
			respond.Error(c, http.StatusConflict, "username_taken", "username already taken", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register user", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, user)
}

func (h *Handler) me(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.OK(c, user)
}
