package surveylogic

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"survey-backend/internal/inference"
	"survey-backend/internal/shared/server/respond"
	"survey-backend/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the read-only route survey takers need.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/logic", h.get)
}

// RegisterAdminRoutes attaches rule base editing routes. The group is
// expected to be restricted to admins.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	logic := rg.Group("/logic")
	logic.GET("", h.get)
	logic.PUT("", h.replace)
	logic.POST("/premises", h.addPremise)
	logic.DELETE("/premises/:id", h.removePremise)
	logic.POST("/subgoals", h.addSubgoal)
	logic.DELETE("/subgoals/:id", h.removeSubgoal)
	logic.POST("/rules", h.addRule)
	logic.DELETE("/rules/:id", h.removeRule)
	logic.GET("/issues", h.issues)
	logic.POST("/preview", h.preview)
}

func (h *Handler) get(c *gin.Context) {
	logic, err := h.Svc.Get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, logic)
}

func (h *Handler) replace(c *gin.Context) {
	var body inference.SurveyLogic
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid survey logic payload", nil)
		return
	}
	logic, err := h.Svc.Replace(c.Request.Context(), body)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, logic)
}

func (h *Handler) addPremise(c *gin.Context) {
	var body PremiseInput
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid premise payload", nil)
		return
	}
	premise, err := h.Svc.AddPremise(c.Request.Context(), body)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, premise)
}

func (h *Handler) removePremise(c *gin.Context) {
	cascade, err := h.Svc.RemovePremise(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, cascade)
}

func (h *Handler) addSubgoal(c *gin.Context) {
	var body SubgoalInput
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid subgoal payload", nil)
		return
	}
	subgoal, err := h.Svc.AddSubgoal(c.Request.Context(), body)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, subgoal)
}

func (h *Handler) removeSubgoal(c *gin.Context) {
	cascade, err := h.Svc.RemoveSubgoal(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, cascade)
}

func (h *Handler) addRule(c *gin.Context) {
	var body RuleInput
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid rule payload", nil)
		return
	}
	rule, err := h.Svc.AddRule(c.Request.Context(), body)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, rule)
}

func (h *Handler) removeRule(c *gin.Context) {
	if err := h.Svc.RemoveRule(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) issues(c *gin.Context) {
	issues, err := h.Svc.Check(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"issues": issues})
}

func (h *Handler) preview(c *gin.Context) {
	var body struct {
		Responses inference.Responses `json:"responses"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid responses payload", nil)
		return
	}
	outcome, err := h.Svc.Preview(c.Request.Context(), body.Responses)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, outcome)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		telemetry.Error("logic.request_failed", map[string]any{"error": err, "path": c.Request.URL.Path})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process survey logic", nil)
	}
}
