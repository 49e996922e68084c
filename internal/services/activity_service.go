package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/taskgraph-api/internal/constants"
	"github.com/yukikurage/taskgraph-api/internal/metrics"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/repository"
)

// ActivityService reads and appends the activity log.
type ActivityService struct {
	store *repository.Store
}

// NewActivityService creates a new ActivityService.
func NewActivityService(store *repository.Store) *ActivityService {
	return &ActivityService{store: store}
}

// ListByUser returns the newest entries written by username.
func (s *ActivityService) ListByUser(username string, limit int) ([]models.ActivityLog, error) {
	return s.list(repository.ActivityFilter{
		Username: username,
		Limit:    clampLimit(limit, constants.DefaultUserLogLimit),
	})
}

// ListByResource returns the newest entries about one resource.
func (s *ActivityService) ListByResource(resourceType models.ResourceType, resourceID uint64, limit int) ([]models.ActivityLog, error) {
	return s.list(repository.ActivityFilter{
		ResourceType: resourceType,
		ResourceID:   &resourceID,
		Limit:        clampLimit(limit, constants.DefaultResourceLogLimit),
	})
}

// ListAll returns the newest entries, optionally of one resource type.
func (s *ActivityService) ListAll(resourceType models.ResourceType, limit int) ([]models.ActivityLog, error) {
	return s.list(repository.ActivityFilter{
		ResourceType: resourceType,
		Limit:        clampLimit(limit, constants.DefaultAllLogLimit),
	})
}

func (s *ActivityService) list(filter repository.ActivityFilter) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	err := s.store.Read(func(r *repository.Store) error {
		var err error
		logs, err = r.Activity().List(filter)
		if err != nil {
			return fmt.Errorf("failed to list activity logs: %w", err)
		}
		return nil
	})
	return logs, err
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > constants.MaxLogLimit {
		return constants.MaxLogLimit
	}
	return limit
}

// record appends entry inside the caller's transaction. The write is counted
// once the transaction commits.
func record(tx *repository.Store, entry models.ActivityLog) (*models.ActivityLog, error) {
	entry.ID = 0
	entry.Timestamp = time.Now()
	if entry.Details == nil {
		entry.Details = map[string]any{}
	}
	if err := tx.Activity().Create(&entry); err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}
	tx.AfterCommit(func() {
		metrics.EntityWritesTotal.WithLabelValues(string(entry.ResourceType), string(entry.Action)).Inc()
	})
	return &entry, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
