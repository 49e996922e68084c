// Package relevance ranks tasks and projects against a task or a free-text
// query.
package relevance

import (
	"sort"

	"github.com/yukikurage/taskgraph-api/internal/constants"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/similarity"
)

// Feature weights of the related-task score.
const (
	weightSameProject  = 0.3
	weightSameStatus   = 0.1
	weightSamePriority = 0.1
	weightSameAssignee = 0.2
	weightTags         = 0.3
)

// ScoredTask is a candidate task with its relevance to a target task.
type ScoredTask struct {
	models.Task
	RelevanceScore float64 `json:"relevanceScore"`
}

// Score computes how relevant other is to target.
func Score(target, other models.Task) float64 {
	var score float64
	if sameProject(target.ProjectID, other.ProjectID) {
		score += weightSameProject
	}
	if target.Status == other.Status {
		score += weightSameStatus
	}
	if target.Priority == other.Priority {
		score += weightSamePriority
	}
	if target.AssigneeID == other.AssigneeID {
		score += weightSameAssignee
	}
	score += weightTags * similarity.TagSimilarity(target.Tags, other.Tags)
	return score
}

// RelatedTasks scores every other task in pool against target, keeps those
// above the relevance threshold and returns the best limit of them, highest
// first. Ties keep pool order.
func RelatedTasks(target models.Task, pool []models.Task, limit int) []ScoredTask {
	related := make([]ScoredTask, 0)
	for _, other := range pool {
		if other.ID == target.ID {
			continue
		}
		score := Score(target, other)
		if score > constants.RelatedRelevanceThreshold {
			related = append(related, ScoredTask{Task: other, RelevanceScore: score})
		}
	}

	sort.SliceStable(related, func(i, j int) bool {
		return related[i].RelevanceScore > related[j].RelevanceScore
	})

	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}
	return related
}

// sameProject treats two tasks without a project as sharing one.
func sameProject(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
