package relevance

import (
	"github.com/yukikurage/taskgraph-api/internal/constants"
	"github.com/yukikurage/taskgraph-api/internal/models"
)

type Suggestion struct {
	Task   models.Task `json:"task"`
	Reason string      `json:"reason"`
	Score  float64     `json:"score"`
}

type Recommendation struct {
	Task        models.Task  `json:"task"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Recommend suggests related tasks for every task that is not completed.
// Groups keep the order of tasks and are capped without re-sorting.
func Recommend(tasks []models.Task) []Recommendation {
	recommendations := make([]Recommendation, 0)

	for _, task := range tasks {
		if task.Status == models.TaskStatusCompleted {
			continue
		}
		related := RelatedTasks(task, tasks, constants.RelatedTasksLimit)
		if len(related) == 0 {
			continue
		}
		if len(related) > constants.RecommendationSuggestions {
			related = related[:constants.RecommendationSuggestions]
		}

		suggestions := make([]Suggestion, 0, len(related))
		for _, r := range related {
			suggestions = append(suggestions, Suggestion{
				Task:   r.Task,
				Reason: reason(r.RelevanceScore),
				Score:  r.RelevanceScore,
			})
		}
		recommendations = append(recommendations, Recommendation{
			Task:        task,
			Suggestions: suggestions,
		})
	}

	if len(recommendations) > constants.MaxRecommendationGroups {
		recommendations = recommendations[:constants.MaxRecommendationGroups]
	}
	return recommendations
}

func reason(score float64) string {
	if score > constants.HighRelevanceThreshold {
		return "Similar high relevance"
	}
	return "Similar moderate relevance"
}
