// Package graph builds the knowledge graph of a user's projects and tasks.
package graph

import (
	"fmt"

	"github.com/yukikurage/taskgraph-api/internal/constants"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/similarity"
)

type NodeType string

const (
	NodeProject NodeType = "project"
	NodeTask    NodeType = "task"
)

type EdgeType string

const (
	EdgeBelongsTo EdgeType = "belongs-to"
	EdgeSubtaskOf EdgeType = "subtask-of"
	EdgeSimilarTo EdgeType = "similar-to"
)

type Node struct {
	ID       string              `json:"id"`
	Type     NodeType            `json:"type"`
	Label    string              `json:"label"`
	Status   models.TaskStatus   `json:"status,omitempty"`
	Priority models.TaskPriority `json:"priority,omitempty"`
	Data     interface{}         `json:"data"`
}

type Edge struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Type   EdgeType `json:"type"`
	Weight float64  `json:"weight"`
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Options tunes graph construction.
type Options struct {
	// DedupeSimilar emits a single similar-to edge per unordered task pair
	// instead of one in each direction.
	DedupeSimilar bool
}

func ProjectNodeID(id uint64) string { return fmt.Sprintf("project-%d", id) }
func TaskNodeID(id uint64) string    { return fmt.Sprintf("task-%d", id) }

// Build creates one node per non-archived project and one per task, then
// links tasks to their project, to their parent and to every other task
// whose tag similarity exceeds the similar-to threshold.
//
// subtask-of edges are emitted even when the parent is not part of the
// graph. Every ordered pair of tasks is compared, so without DedupeSimilar
// each similar pair yields an edge in both directions.
func Build(projects []models.Project, tasks []models.Task, opts Options) Graph {
	g := Graph{
		Nodes: make([]Node, 0, len(projects)+len(tasks)),
		Edges: []Edge{},
	}
	present := make(map[string]bool, len(projects))

	for i := range projects {
		project := projects[i]
		if project.IsArchived {
			continue
		}
		node := Node{
			ID:    ProjectNodeID(project.ID),
			Type:  NodeProject,
			Label: project.Name,
			Data:  project,
		}
		g.Nodes = append(g.Nodes, node)
		present[node.ID] = true
	}

	for i := range tasks {
		task := tasks[i]
		taskNodeID := TaskNodeID(task.ID)
		g.Nodes = append(g.Nodes, Node{
			ID:       taskNodeID,
			Type:     NodeTask,
			Label:    task.Title,
			Status:   task.Status,
			Priority: task.Priority,
			Data:     task,
		})

		if task.ProjectID != nil {
			projectNodeID := ProjectNodeID(*task.ProjectID)
			if present[projectNodeID] {
				g.Edges = append(g.Edges, Edge{
					From:   taskNodeID,
					To:     projectNodeID,
					Type:   EdgeBelongsTo,
					Weight: constants.BelongsToEdgeWeight,
				})
			}
		}

		if task.ParentTaskID != nil {
			g.Edges = append(g.Edges, Edge{
				From:   taskNodeID,
				To:     TaskNodeID(*task.ParentTaskID),
				Type:   EdgeSubtaskOf,
				Weight: constants.SubtaskOfEdgeWeight,
			})
		}

		for j := range tasks {
			other := tasks[j]
			if other.ID == task.ID {
				continue
			}
			if opts.DedupeSimilar && j < i {
				continue
			}
			score := similarity.TagSimilarity(task.Tags, other.Tags)
			if score > constants.SimilarEdgeThreshold {
				g.Edges = append(g.Edges, Edge{
					From:   taskNodeID,
					To:     TaskNodeID(other.ID),
					Type:   EdgeSimilarTo,
					Weight: score,
				})
			}
		}
	}

	return g
}

// CountEdges returns the number of edges of each type.
func (g Graph) CountEdges() map[EdgeType]int {
	counts := make(map[EdgeType]int, 3)
	for _, e := range g.Edges {
		counts[e.Type]++
	}
	return counts
}
