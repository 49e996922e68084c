package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/taskgraph-api/internal/dto"
	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
	"github.com/yukikurage/taskgraph-api/internal/middleware"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/relations"
	"github.com/yukikurage/taskgraph-api/internal/services"
	"github.com/yukikurage/taskgraph-api/internal/utils"
)

type CommentHandler struct {
	commentService *services.CommentService
	log            zerolog.Logger
}

func NewCommentHandler(commentService *services.CommentService, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		log:            log,
	}
}

type commentRequest struct {
	Content         string  `json:"content"`
	ParentCommentID *uint64 `json:"parentCommentId"`
}

// ListTaskComments returns a task's comments as reply threads, or in
// creation order with flat=true
func (h *CommentHandler) ListTaskComments(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if c.Query("flat") == "true" {
		comments, err := h.commentService.ListCommentsByTask(task.ID)
		if err != nil {
			apierrors.RespondDomainError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"comments": toCommentNodes(comments)})
		return
	}

	tree, err := h.commentService.GetCommentTree(task.ID)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": tree})
}

// CreateComment adds a comment or reply to a task
func (h *CommentHandler) CreateComment(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "required-content")
		return
	}

	comment, err := h.commentService.CreateComment(services.CreateCommentInput{
		TaskID:          task.ID,
		UserID:          username,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	})
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": dto.ToCommentNode(*comment)})
}

// ListMyComments returns every comment written by the current user
func (h *CommentHandler) ListMyComments(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	comments, err := h.commentService.ListCommentsByUser(username)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": toCommentNodes(comments)})
}

// ListReplies returns the direct replies to a comment
func (h *CommentHandler) ListReplies(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("commentId"))
	if !ok {
		apierrors.NotFound(c, "comment-not-found")
		return
	}

	replies, err := h.commentService.ListReplies(id)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"replies": toCommentNodes(replies)})
}

// UpdateComment edits the current user's comment
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := utils.ParseID(c.Param("commentId"))
	if !ok {
		apierrors.NotFound(c, "comment-not-found")
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "required-content")
		return
	}

	comment, err := h.commentService.UpdateComment(username, id, req.Content)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": dto.ToCommentNode(*comment)})
}

// DeleteComment deletes the current user's comment; replies are kept
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := utils.ParseID(c.Param("commentId"))
	if !ok {
		apierrors.NotFound(c, "comment-not-found")
		return
	}

	if err := h.commentService.DeleteComment(username, id); err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment-deleted"})
}

func toCommentNodes(comments []models.Comment) []relations.CommentNode {
	nodes := make([]relations.CommentNode, len(comments))
	for i, comment := range comments {
		nodes[i] = dto.ToCommentNode(comment)
	}
	return nodes
}
