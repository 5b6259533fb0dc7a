package handler

import (
	"errors"
	"net/http"

	"github.com/linemark/linemark/internal/dto"
	"github.com/linemark/linemark/internal/importer"
	"github.com/linemark/linemark/internal/repository"
	"github.com/linemark/linemark/internal/service"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentService   service.DocumentService
	annotationService service.AnnotationService
}

func NewDocumentHandler(documentService service.DocumentService, annotationService service.AnnotationService) *DocumentHandler {
	return &DocumentHandler{
		documentService:   documentService,
		annotationService: annotationService,
	}
}

// RegisterRoutes registers document routes. Reads are public; writes
// require authentication. importLimiter throttles URL imports.
func (h *DocumentHandler) RegisterRoutes(api *gin.RouterGroup, authMW, importLimiter gin.HandlerFunc) {
	docs := api.Group("/documents")
	{
		docs.GET("", h.List)
		docs.GET("/:id", h.Get)
		docs.GET("/:id/comments", h.ListComments)
		docs.GET("/:id/highlights", h.ListHighlights)
		docs.GET("/:id/relations", h.ListRelations)
		docs.GET("/:id/annotations", h.Annotations)

		docs.POST("", authMW, h.Create)
		docs.POST("/import-url", authMW, importLimiter, h.ImportURL)
		docs.DELETE("/:id", authMW, h.Delete)
	}
}

// GET /api/documents
func (h *DocumentHandler) List(c *gin.Context) {
	documents, err := h.documentService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}
	c.JSON(http.StatusOK, documents)
}

// GET /api/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	document, err := h.documentService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch document"})
		return
	}
	c.JSON(http.StatusOK, document)
}

// POST /api/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	document, err := h.documentService.Create(req.Name, req.Content, req.Type)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create document"})
		return
	}
	c.JSON(http.StatusCreated, document)
}

// POST /api/documents/import-url
func (h *DocumentHandler) ImportURL(c *gin.Context) {
	var req dto.ImportDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	document, err := h.documentService.ImportFromURL(c.Request.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrInvalidURL), errors.Is(err, importer.ErrScheme):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, importer.ErrNotText):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		case errors.Is(err, importer.ErrTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large (max 10MB)"})
		case errors.Is(err, importer.ErrUpstream):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import document from URL"})
		}
		return
	}
	c.JSON(http.StatusCreated, document)
}

// DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documentService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/documents/:id/comments
func (h *DocumentHandler) ListComments(c *gin.Context) {
	comments, err := h.annotationService.ListComments(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}

// GET /api/documents/:id/highlights
func (h *DocumentHandler) ListHighlights(c *gin.Context) {
	highlights, err := h.annotationService.ListHighlights(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch highlights"})
		return
	}
	c.JSON(http.StatusOK, highlights)
}

// GET /api/documents/:id/relations
func (h *DocumentHandler) ListRelations(c *gin.Context) {
	relations, err := h.annotationService.ListRelations(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch relations"})
		return
	}
	c.JSON(http.StatusOK, relations)
}

// GET /api/documents/:id/annotations
// Combined per-line view: comment threads, highlighted lines and
// relation counts, rebuilt from the stored rows on every call.
func (h *DocumentHandler) Annotations(c *gin.Context) {
	view, err := h.annotationService.BuildView(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build annotations view"})
		return
	}
	c.JSON(http.StatusOK, view)
}
