package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskgraph-api/internal/models"
)

func ptr(v uint64) *uint64 { return &v }

func fixtures() ([]models.Project, []models.Task) {
	projects := []models.Project{
		{ID: 1, Name: "Web"},
		{ID: 2, Name: "Old", IsArchived: true},
	}
	tasks := []models.Task{
		{ID: 10, Title: "Login", ProjectID: ptr(1), Tags: []string{"auth", "backend"}},
		{ID: 11, Title: "Logout", ProjectID: ptr(1), ParentTaskID: ptr(10), Tags: []string{"auth", "backend"}},
		{ID: 12, Title: "Legacy", ProjectID: ptr(2), ParentTaskID: ptr(99), Tags: []string{"css"}},
	}
	return projects, tasks
}

func TestBuild_Nodes(t *testing.T) {
	projects, tasks := fixtures()
	g := Build(projects, tasks, Options{})

	ids := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"project-1", "task-10", "task-11", "task-12"}, ids)
	assert.Equal(t, NodeTask, g.Nodes[1].Type)
	assert.Equal(t, "Login", g.Nodes[1].Label)
}

func TestBuild_Edges(t *testing.T) {
	projects, tasks := fixtures()
	g := Build(projects, tasks, Options{})

	assert.Equal(t, []Edge{
		{From: "task-10", To: "project-1", Type: EdgeBelongsTo, Weight: 1.0},
		{From: "task-10", To: "task-11", Type: EdgeSimilarTo, Weight: 1.0},
		{From: "task-11", To: "project-1", Type: EdgeBelongsTo, Weight: 1.0},
		{From: "task-11", To: "task-10", Type: EdgeSubtaskOf, Weight: 0.8},
		{From: "task-11", To: "task-10", Type: EdgeSimilarTo, Weight: 1.0},
		{From: "task-12", To: "task-99", Type: EdgeSubtaskOf, Weight: 0.8},
	}, g.Edges)
}

func TestBuild_DedupeSimilar(t *testing.T) {
	projects, tasks := fixtures()
	g := Build(projects, tasks, Options{DedupeSimilar: true})

	counts := g.CountEdges()
	assert.Equal(t, 1, counts[EdgeSimilarTo])
	assert.Equal(t, 2, counts[EdgeBelongsTo])
	assert.Equal(t, 2, counts[EdgeSubtaskOf])
}

func TestBuild_SimilarityThreshold(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Tags: []string{"a", "b", "c"}},
		{ID: 2, Tags: []string{"a", "d", "e"}},
	}
	g := Build(nil, tasks, Options{})
	require.Len(t, g.Nodes, 2)
	assert.Empty(t, g.Edges)
}

func TestBuild_PartialTagOverlap(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Tags: []string{"bug,urgent"}},
		{ID: 2, Tags: []string{"bug", "feature"}},
	}
	g := Build(nil, tasks, Options{})

	require.Len(t, g.Edges, 2)
	assert.Equal(t, "task-1", g.Edges[0].From)
	assert.Equal(t, "task-2", g.Edges[0].To)
	assert.Equal(t, "task-2", g.Edges[1].From)
	assert.Equal(t, "task-1", g.Edges[1].To)
	for _, e := range g.Edges {
		assert.Equal(t, EdgeSimilarTo, e.Type)
		assert.InDelta(t, 1.0/3.0, e.Weight, 1e-9)
	}
}

func TestBuild_Empty(t *testing.T) {
	g := Build(nil, nil, Options{})
	assert.NotNil(t, g.Nodes)
	assert.NotNil(t, g.Edges)
	assert.Empty(t, g.Nodes)
}
