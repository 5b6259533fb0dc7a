package handler

import (
	"errors"
	"net/http"

	"github.com/linemark/linemark/internal/dto"
	"github.com/linemark/linemark/internal/middleware"
	"github.com/linemark/linemark/internal/repository"
	"github.com/linemark/linemark/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	annotationService service.AnnotationService
}

func NewCommentHandler(annotationService service.AnnotationService) *CommentHandler {
	return &CommentHandler{annotationService: annotationService}
}

// RegisterRoutes registers comment write routes; reading happens via the
// document routes.
func (h *CommentHandler) RegisterRoutes(api *gin.RouterGroup, authMW gin.HandlerFunc) {
	comments := api.Group("/comments", authMW)
	{
		comments.POST("", h.Create)
		comments.PUT("/:id", h.Update)
		comments.DELETE("/:id", h.Delete)
	}
}

// POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	username, exists := c.Get(middleware.ContextUsername)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.annotationService.CreateComment(
		username.(string), req.DocumentID, req.LineNumber, req.Content, req.ParentCommentID,
	)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		case errors.Is(err, service.ErrParentNotFound),
			errors.Is(err, service.ErrParentIsReply),
			errors.Is(err, service.ErrParentWrongDoc):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		}
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	username, exists := c.Get(middleware.ContextUsername)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.annotationService.UpdateComment(c.Param("id"), username.(string), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		}
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	username, exists := c.Get(middleware.ContextUsername)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	err := h.annotationService.DeleteComment(c.Param("id"), username.(string))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, service.ErrHasReplies):
			c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete a comment that has replies"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
