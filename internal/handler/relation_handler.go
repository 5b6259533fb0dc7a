package handler

import (
	"errors"
	"net/http"

	"github.com/linemark/linemark/internal/dto"
	"github.com/linemark/linemark/internal/repository"
	"github.com/linemark/linemark/internal/service"
	"github.com/linemark/linemark/internal/spans"

	"github.com/gin-gonic/gin"
)

type RelationHandler struct {
	annotationService service.AnnotationService
}

func NewRelationHandler(annotationService service.AnnotationService) *RelationHandler {
	return &RelationHandler{annotationService: annotationService}
}

// RegisterRoutes registers relation write routes; reading happens via
// the document routes. Deletion requires authentication but not
// authorship: relations are shared annotations.
func (h *RelationHandler) RegisterRoutes(api *gin.RouterGroup, authMW gin.HandlerFunc) {
	relations := api.Group("/relations", authMW)
	{
		relations.POST("", h.Create)
		relations.POST("/:id/spans", h.AddSpan)
		relations.DELETE("/:id", h.Delete)
	}
	api.DELETE("/relation-spans/:id", authMW, h.DeleteSpan)
}

// POST /api/relations
func (h *RelationHandler) Create(c *gin.Context) {
	var req dto.CreateRelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	explicit := make([]spans.Span, 0, len(req.Spans))
	for _, s := range req.Spans {
		explicit = append(explicit, spans.Span{StartLine: s.StartLine, EndLine: s.EndLine})
	}

	relation, err := h.annotationService.CreateRelation(req.DocumentID, req.URL, req.Note, req.Lines, explicit)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		case errors.Is(err, service.ErrNoSpans), errors.Is(err, service.ErrInvalidSpan):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create relation"})
		}
		return
	}
	c.JSON(http.StatusCreated, relation)
}

// POST /api/relations/:id/spans
func (h *RelationHandler) AddSpan(c *gin.Context) {
	var req dto.AddRelationSpanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span, err := h.annotationService.AddRelationSpan(c.Param("id"), spans.Span{
		StartLine: req.StartLine,
		EndLine:   req.EndLine,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Relation not found"})
		case errors.Is(err, service.ErrInvalidSpan):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create span"})
		}
		return
	}
	c.JSON(http.StatusCreated, span)
}

// DELETE /api/relations/:id
func (h *RelationHandler) Delete(c *gin.Context) {
	if err := h.annotationService.DeleteRelation(c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Relation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete relation"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/relation-spans/:id
func (h *RelationHandler) DeleteSpan(c *gin.Context) {
	if err := h.annotationService.DeleteRelationSpan(c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Relation span not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete relation span"})
		return
	}
	c.Status(http.StatusNoContent)
}
