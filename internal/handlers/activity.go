package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/services"
	"github.com/yukikurage/taskgraph-api/internal/utils"
)

type ActivityHandler struct {
	activityService *services.ActivityService
	log             zerolog.Logger
}

func NewActivityHandler(activityService *services.ActivityService, log zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		log:             log,
	}
}

// ListLogs returns activity entries, newest first.
// ?user=<name> lists one user's actions, ?resourceType=&resourceId= one
// resource's history, otherwise all entries optionally narrowed by type.
func (h *ActivityHandler) ListLogs(c *gin.Context) {
	limit := utils.GetLimitParam(c)
	resourceType := models.ResourceType(c.Query("resourceType"))

	var (
		logs []models.ActivityLog
		err  error
	)
	switch {
	case c.Query("user") != "":
		logs, err = h.activityService.ListByUser(c.Query("user"), limit)
	case resourceType != "" && c.Query("resourceId") != "":
		resourceID, ok := utils.ParseID(c.Query("resourceId"))
		if !ok {
			apierrors.BadRequest(c, "invalid-resource-id")
			return
		}
		logs, err = h.activityService.ListByResource(resourceType, resourceID, limit)
	default:
		logs, err = h.activityService.ListAll(resourceType, limit)
	}
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
