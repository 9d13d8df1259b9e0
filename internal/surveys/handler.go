package surveys

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"survey-backend/internal/inference"
	"survey-backend/internal/shared/server/middleware"
	"survey-backend/internal/shared/server/respond"
	"survey-backend/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/surveys", h.submit)
	rg.GET("/surveys", h.history)
	rg.GET("/surveys/summary", h.summary)
	rg.GET("/surveys/:id", h.get)
}

type submitRequest struct {
	Responses inference.Responses `json:"responses"`
}

func (h *Handler) submit(c *gin.Context) {
	var body submitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid responses payload", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	survey, err := h.Svc.Submit(c.Request.Context(), userID, body.Responses)
	if err != nil {
		var incomplete *IncompleteError
		switch {
		case errors.Is(err, ErrNoQuestions):
			respond.Error(c, http.StatusUnprocessableEntity, "no_questions", "no questions have been configured yet", nil)
		case errors.As(err, &incomplete):
			respond.Error(c, http.StatusUnprocessableEntity, "incomplete", "every question must be answered", gin.H{"missing": incomplete.Missing})
		default:
			telemetry.Error("survey.submit_failed", map[string]any{"error": err, "user_id": userID})
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit survey", nil)
		}
		return
	}
	c.Set("surveyId", survey.ID)
	respond.JSON(c, http.StatusCreated, survey)
}

func (h *Handler) history(c *gin.Context) {
	list, err := h.Svc.History(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load history", nil)
		return
	}
	respond.OK(c, gin.H{"surveys": list})
}

func (h *Handler) summary(c *gin.Context) {
	summary, err := h.Svc.Summary(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load summary", nil)
		return
	}
	respond.OK(c, summary)
}

func (h *Handler) get(c *gin.Context) {
	surveyID := c.Param("id")
	c.Set("surveyId", surveyID)
	survey, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), surveyID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "survey not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load survey", nil)
		return
	}
	respond.OK(c, survey)
}
