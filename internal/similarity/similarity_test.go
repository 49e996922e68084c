package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{"identical", []string{"backend", "api"}, []string{"api", "backend"}, 1},
		{"one shared of three", []string{"backend", "api"}, []string{"api", "frontend"}, 1.0 / 3.0},
		{"disjoint", []string{"ops"}, []string{"design"}, 0},
		{"empty side", []string{}, []string{"api"}, 0},
		{"both empty", nil, nil, 0},
		{"comma separated and cased", []string{"Backend, API"}, []string{"api", "backend"}, 1},
		{"empty tokens dropped", []string{"api,,", " "}, []string{"api"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TagSimilarity(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, TagSimilarity(tt.b, tt.a), 1e-9)
		})
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t,
		[]string{"fix", "login", "bug", "the", "login", "page"},
		Tokenize("Fix login-bug on the LOGIN page!"),
	)
	assert.Empty(t, Tokenize("a an to"))
	assert.Empty(t, Tokenize(""))
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity("login page bug", "login page bug"), 1e-9)
	assert.Equal(t, 0.0, CosineSimilarity("", "login page"))
	assert.Equal(t, 0.0, CosineSimilarity("login", "deploy"))

	// Repeated words weigh more than a set overlap would (0.5)
	assert.InDelta(t, 1/math.Sqrt2, CosineSimilarity("login login", "login page"), 1e-9)

	score := CosineSimilarity("login", "Fix login bug")
	assert.Greater(t, score, 0.2)
	assert.LessOrEqual(t, score, 1.0)

	assert.InDelta(t,
		CosineSimilarity("database migration plan", "plan the database"),
		CosineSimilarity("plan the database", "database migration plan"),
		1e-9,
	)
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "api,backend", TagString([]string{"api", "backend"}))
	assert.Equal(t, "", TagString(nil))
}
