package relevance

import (
	"sort"
	"strings"

	"github.com/yukikurage/taskgraph-api/internal/constants"
	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/similarity"
)

type Mode string

const (
	ModeExact    Mode = "exact"
	ModeSemantic Mode = "semantic"
)

var (
	ErrQueryRequired = apierrors.New(apierrors.ErrValidation, "query-required")
	ErrInvalidMode   = apierrors.New(apierrors.ErrValidation, "invalid-mode")
)

// ParseMode maps an empty mode to exact and rejects unknown modes.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeExact:
		return ModeExact, nil
	case ModeSemantic:
		return ModeSemantic, nil
	default:
		return "", ErrInvalidMode
	}
}

type ResultType string

const (
	ResultTask    ResultType = "task"
	ResultProject ResultType = "project"
)

type SearchResult struct {
	Type           ResultType  `json:"type"`
	Data           interface{} `json:"data"`
	Similarity     float64     `json:"similarity"`
	RelevanceScore float64     `json:"relevanceScore"`
}

// Search ranks tasks and non-archived projects against query.
//
// In exact mode an item matches when the query is a case-insensitive
// substring of its text; a hit in the title or name scores 1.0 and any
// other hit scores less. Exact results are not capped.
//
// In semantic mode items are scored by cosine similarity, filtered by the
// semantic minimum and capped to the best few.
func Search(query string, mode Mode, tasks []models.Task, projects []models.Project) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrQueryRequired
	}

	var results []SearchResult
	switch mode {
	case ModeSemantic:
		results = semanticSearch(query, tasks, projects)
	case ModeExact, "":
		results = exactSearch(query, tasks, projects)
	default:
		return nil, ErrInvalidMode
	}
	return results, nil
}

func taskText(t models.Task) string {
	return t.Title + " " + t.Description + " " + similarity.TagString(t.Tags)
}

func projectText(p models.Project) string {
	return p.Name + " " + p.Description
}

func newResult(typ ResultType, data interface{}, score float64) SearchResult {
	return SearchResult{
		Type:           typ,
		Data:           data,
		Similarity:     score,
		RelevanceScore: score * 100,
	}
}

func exactSearch(query string, tasks []models.Task, projects []models.Project) []SearchResult {
	needle := strings.ToLower(query)
	results := make([]SearchResult, 0)

	for _, task := range tasks {
		if !strings.Contains(strings.ToLower(taskText(task)), needle) {
			continue
		}
		score := constants.ExactSecondaryFieldScore
		if strings.Contains(strings.ToLower(task.Title), needle) {
			score = 1.0
		}
		results = append(results, newResult(ResultTask, task, score))
	}

	for _, project := range projects {
		if project.IsArchived {
			continue
		}
		if !strings.Contains(strings.ToLower(projectText(project)), needle) {
			continue
		}
		score := constants.ExactSecondaryFieldScore
		if strings.Contains(strings.ToLower(project.Name), needle) {
			score = 1.0
		}
		results = append(results, newResult(ResultProject, project, score))
	}

	sortBySimilarity(results)
	return results
}

func semanticSearch(query string, tasks []models.Task, projects []models.Project) []SearchResult {
	queryTokens := similarity.Tokenize(query)
	results := make([]SearchResult, 0)

	for _, task := range tasks {
		score := similarity.CosineTokens(queryTokens, similarity.Tokenize(taskText(task)))
		if score > constants.SemanticSimilarityMinimum {
			results = append(results, newResult(ResultTask, task, score))
		}
	}

	for _, project := range projects {
		if project.IsArchived {
			continue
		}
		score := similarity.CosineTokens(queryTokens, similarity.Tokenize(projectText(project)))
		if score > constants.SemanticSimilarityMinimum {
			results = append(results, newResult(ResultProject, project, score))
		}
	}

	sortBySimilarity(results)
	if len(results) > constants.SemanticSearchLimit {
		results = results[:constants.SemanticSearchLimit]
	}
	return results
}

func sortBySimilarity(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
}
