package constants

const (
	// ContextKeyUsername holds the authenticated username in sessions and gin contexts.
	ContextKeyUsername = "username"

	// DefaultProjectColor is used when a project is created without a color.
	DefaultProjectColor = "#3B82F6"
)

// Activity log page sizes
const (
	DefaultUserLogLimit     = 50
	DefaultResourceLogLimit = 20
	DefaultAllLogLimit      = 100
	MaxLogLimit             = 500
)

// Relevance and graph tuning
const (
	RelatedTasksLimit         = 5
	RecommendationSuggestions = 3
	MaxRecommendationGroups   = 10
	SemanticSearchLimit       = 10
	RelatedRelevanceThreshold = 0.3
	SimilarEdgeThreshold      = 0.3
	SemanticSimilarityMinimum = 0.2
	HighRelevanceThreshold    = 0.5
	ExactSecondaryFieldScore  = 0.6
	BelongsToEdgeWeight       = 1.0
	SubtaskOfEdgeWeight       = 0.8
)
