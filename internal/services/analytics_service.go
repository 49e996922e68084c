package services

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yukikurage/taskgraph-api/internal/constants"
	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
	"github.com/yukikurage/taskgraph-api/internal/graph"
	"github.com/yukikurage/taskgraph-api/internal/metrics"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/relevance"
	"github.com/yukikurage/taskgraph-api/internal/repository"
)

var ErrRelatedTasksForbidden = apierrors.New(apierrors.ErrForbidden, "forbidden")

// AnalyticsService derives graphs, rankings and summaries from a user's
// tasks and projects. Each call reads one consistent snapshot.
type AnalyticsService struct {
	store *repository.Store
	graph graph.Options
	log   zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(store *repository.Store, opts graph.Options, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		store: store,
		graph: opts,
		log:   log.With().Str("component", "analytics").Logger(),
	}
}

// UserSummary aggregates the tasks a user created or is assigned to.
type UserSummary struct {
	TotalTasks          int     `json:"totalTasks"`
	CompletedTasks      int     `json:"completedTasks"`
	PendingTasks        int     `json:"pendingTasks"`
	InProgressTasks     int     `json:"inProgressTasks"`
	OverdueTasks        int     `json:"overdueTasks"`
	HighPriorityTasks   int     `json:"highPriorityTasks"`
	TotalEstimatedHours float64 `json:"totalEstimatedHours"`
	TotalActualHours    float64 `json:"totalActualHours"`
}

type snapshot struct {
	tasks    []models.Task
	projects []models.Project
}

func (s *AnalyticsService) load(username string, withProjects bool) (*snapshot, error) {
	snap := &snapshot{}
	err := s.store.Read(func(r *repository.Store) error {
		var err error
		snap.tasks, err = r.Tasks().List(repository.TaskFilter{Username: username})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		if !withProjects {
			return nil
		}
		snap.projects, err = r.Projects().ListByUser(username)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// KnowledgeGraph builds the graph of username's projects and tasks.
func (s *AnalyticsService) KnowledgeGraph(username string) (*graph.Graph, error) {
	snap, err := s.load(username, true)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	g := graph.Build(snap.projects, snap.tasks, s.graph)
	metrics.GraphBuildDuration.Observe(time.Since(start).Seconds())

	counts := g.CountEdges()
	for edgeType, n := range counts {
		metrics.GraphEdgesTotal.WithLabelValues(string(edgeType)).Add(float64(n))
	}

	s.log.Debug().
		Str("username", username).
		Int("nodes", len(g.Nodes)).
		Int("edges", len(g.Edges)).
		Dur("elapsed", time.Since(start)).
		Msg("knowledge graph built")

	return &g, nil
}

// RelatedTasks ranks username's tasks against one of the tasks they created.
func (s *AnalyticsService) RelatedTasks(taskID uint64, username string) ([]relevance.ScoredTask, error) {
	var (
		target *models.Task
		pool   []models.Task
	)
	err := s.store.Read(func(r *repository.Store) error {
		var err error
		target, err = findTask(r, taskID)
		if err != nil {
			return err
		}
		if target.CreatedBy != username {
			return ErrRelatedTasksForbidden
		}

		pool, err = r.Tasks().List(repository.TaskFilter{Username: username})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return relevance.RelatedTasks(*target, pool, constants.RelatedTasksLimit), nil
}

// Search runs an exact or semantic search over username's tasks and
// projects. An empty mode means exact.
func (s *AnalyticsService) Search(query, mode, username string) ([]relevance.SearchResult, error) {
	if isBlank(query) {
		return nil, relevance.ErrQueryRequired
	}
	m, err := relevance.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	snap, err := s.load(username, true)
	if err != nil {
		return nil, err
	}

	results, err := relevance.Search(query, m, snap.tasks, snap.projects)
	if err != nil {
		return nil, err
	}
	metrics.SearchesTotal.WithLabelValues(string(m)).Inc()

	s.log.Debug().
		Str("username", username).
		Str("mode", string(m)).
		Int("results", len(results)).
		Msg("search completed")

	return results, nil
}

// Recommendations suggests related tasks for username's open tasks.
func (s *AnalyticsService) Recommendations(username string) ([]relevance.Recommendation, error) {
	snap, err := s.load(username, false)
	if err != nil {
		return nil, err
	}
	return relevance.Recommend(snap.tasks), nil
}

// UserSummary counts username's tasks by state.
func (s *AnalyticsService) UserSummary(username string) (*UserSummary, error) {
	snap, err := s.load(username, false)
	if err != nil {
		return nil, err
	}
	return summarize(snap.tasks, time.Now()), nil
}

func summarize(tasks []models.Task, now time.Time) *UserSummary {
	summary := &UserSummary{TotalTasks: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusCompleted:
			summary.CompletedTasks++
		case models.TaskStatusPending:
			summary.PendingTasks++
		case models.TaskStatusInProgress:
			summary.InProgressTasks++
		}
		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != models.TaskStatusCompleted {
			summary.OverdueTasks++
		}
		if t.Priority == models.TaskPriorityHigh || t.Priority == models.TaskPriorityUrgent {
			summary.HighPriorityTasks++
		}
		if t.EstimatedHours != nil {
			summary.TotalEstimatedHours += *t.EstimatedHours
		}
		if t.ActualHours != nil {
			summary.TotalActualHours += *t.ActualHours
		}
	}
	return summary
}
