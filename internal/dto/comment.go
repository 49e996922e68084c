package dto

import (
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/relations"
)

// ToCommentNode converts a single comment to the threaded representation
// with no replies.
func ToCommentNode(comment models.Comment) relations.CommentNode {
	return relations.CommentNode{
		ID:              comment.ID,
		Text:            comment.Content,
		Username:        comment.UserID,
		CreatedAt:       comment.CreatedAt,
		ParentCommentID: comment.ParentCommentID,
		Replies:         []*relations.CommentNode{},
	}
}
