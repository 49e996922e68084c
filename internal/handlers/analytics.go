package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
	"github.com/yukikurage/taskgraph-api/internal/middleware"
	"github.com/yukikurage/taskgraph-api/internal/services"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	log              zerolog.Logger
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		log:              log,
	}
}

type searchRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode"`
}

// UserSummary returns task counts for the current user
func (h *AnalyticsHandler) UserSummary(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	summary, err := h.analyticsService.UserSummary(username)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analytics": summary})
}

// KnowledgeGraph returns the project/task graph of the current user
func (h *AnalyticsHandler) KnowledgeGraph(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	g, err := h.analyticsService.KnowledgeGraph(username)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, g)
}

// RelatedTasks ranks the current user's tasks against :taskId
func (h *AnalyticsHandler) RelatedTasks(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	related, err := h.analyticsService.RelatedTasks(task.ID, username)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"relatedTasks": related})
}

// Search runs an exact or semantic search
func (h *AnalyticsHandler) Search(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "query-required")
		return
	}

	results, err := h.analyticsService.Search(req.Query, req.Mode, username)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Recommendations suggests related work for each open task
func (h *AnalyticsHandler) Recommendations(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	recs, err := h.analyticsService.Recommendations(username)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}
