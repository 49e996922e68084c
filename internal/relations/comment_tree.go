package relations

import (
	"fmt"
	"time"

	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/repository"
)

type CommentNode struct {
	ID              uint64         `json:"id"`
	Text            string         `json:"text"`
	Username        string         `json:"username"`
	CreatedAt       time.Time      `json:"createdAt"`
	ParentCommentID *uint64        `json:"parentCommentId"`
	Replies         []*CommentNode `json:"replies"`
}

// GetCommentTree returns a task's comments as a forest. A comment whose
// parent is not among the task's comments becomes a root.
func (ix *Index) GetCommentTree(taskID uint64) ([]*CommentNode, error) {
	var roots []*CommentNode
	err := ix.store.Read(func(s *repository.Store) error {
		if _, err := findTask(s, taskID); err != nil {
			return err
		}
		comments, err := s.Comments().ListByTask(taskID)
		if err != nil {
			return fmt.Errorf("failed to list comments: %w", err)
		}
		roots = BuildCommentTree(comments)
		return nil
	})
	return roots, err
}

// BuildCommentTree links comments, given in creation order, into a forest
// in two passes. Every comment appears exactly once.
func BuildCommentTree(comments []models.Comment) []*CommentNode {
	nodes := make(map[uint64]*CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &CommentNode{
			ID:              c.ID,
			Text:            c.Content,
			Username:        c.UserID,
			CreatedAt:       c.CreatedAt,
			ParentCommentID: c.ParentCommentID,
			Replies:         []*CommentNode{},
		}
	}

	roots := make([]*CommentNode, 0)
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentCommentID != nil && *c.ParentCommentID != c.ID {
			if parent, ok := nodes[*c.ParentCommentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
