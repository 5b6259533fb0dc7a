package handler

import (
	"errors"
	"net/http"

	"github.com/linemark/linemark/internal/dto"
	"github.com/linemark/linemark/internal/repository"
	"github.com/linemark/linemark/internal/service"

	"github.com/gin-gonic/gin"
)

type HighlightHandler struct {
	annotationService service.AnnotationService
}

func NewHighlightHandler(annotationService service.AnnotationService) *HighlightHandler {
	return &HighlightHandler{annotationService: annotationService}
}

func (h *HighlightHandler) RegisterRoutes(api *gin.RouterGroup, authMW gin.HandlerFunc) {
	api.POST("/highlights/toggle", authMW, h.Toggle)
}

// POST /api/highlights/toggle
// Highlights are a shared per-document marker: any authenticated user
// may toggle any line.
func (h *HighlightHandler) Toggle(c *gin.Context) {
	var req dto.ToggleHighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	highlight, action, err := h.annotationService.ToggleHighlight(req.DocumentID, req.LineNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle highlight"})
		return
	}

	c.JSON(http.StatusOK, dto.ToggleHighlightResponse{
		Highlight: highlight,
		Action:    action,
	})
}
