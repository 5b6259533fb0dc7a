package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linemark/linemark/internal/dto"
	"github.com/linemark/linemark/internal/importer"
	"github.com/linemark/linemark/internal/models"
	"github.com/linemark/linemark/internal/repository"
	"github.com/linemark/linemark/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockDocumentService mocks the DocumentService interface
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Create(name, content, docType string) (*models.Document, error) {
	args := m.Called(name, content, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentService) Get(id string) (*models.Document, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentService) List() ([]models.Document, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockDocumentService) ImportFromURL(ctx context.Context, rawURL string) (*models.Document, error) {
	args := m.Called(rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func TestListDocuments(t *testing.T) {
	mockDocs := new(MockDocumentService)
	handler := NewDocumentHandler(mockDocs, new(MockAnnotationService))
	router := setupRouter()
	router.GET("/documents", handler.List)

	documents := []models.Document{
		{ID: "doc-1", Name: "a.txt", Type: models.DocumentTypeTxt},
		{ID: "doc-2", Name: "b.txt", Type: models.DocumentTypeTxt},
	}
	mockDocs.On("List").Return(documents, nil)

	req, _ := http.NewRequest("GET", "/documents", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []models.Document
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response, 2)

	mockDocs.AssertExpectations(t)
}

func TestGetDocument_NotFound(t *testing.T) {
	mockDocs := new(MockDocumentService)
	handler := NewDocumentHandler(mockDocs, new(MockAnnotationService))
	router := setupRouter()
	router.GET("/documents/:id", handler.Get)

	mockDocs.On("Get", "missing").Return(nil, repository.ErrNotFound)

	req, _ := http.NewRequest("GET", "/documents/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockDocs.AssertExpectations(t)
}

func TestCreateDocument_Success(t *testing.T) {
	mockDocs := new(MockDocumentService)
	handler := NewDocumentHandler(mockDocs, new(MockAnnotationService))
	router := setupRouter()
	router.POST("/documents", fakeAuth("alice"), handler.Create)

	created := &models.Document{
		ID:      "doc-1",
		Name:    "notes.txt",
		Content: "first line",
		Type:    models.DocumentTypeTxt,
	}
	mockDocs.On("Create", "notes.txt", "first line", "txt").Return(created, nil)

	w := postJSON(router, "/documents", dto.CreateDocumentRequest{
		Name:    "notes.txt",
		Content: "first line",
		Type:    "txt",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response models.Document
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "doc-1", response.ID)

	mockDocs.AssertExpectations(t)
}

func TestCreateDocument_BadType(t *testing.T) {
	mockDocs := new(MockDocumentService)
	handler := NewDocumentHandler(mockDocs, new(MockAnnotationService))
	router := setupRouter()
	router.POST("/documents", fakeAuth("alice"), handler.Create)

	w := postJSON(router, "/documents", dto.CreateDocumentRequest{
		Name:    "notes.docx",
		Content: "x",
		Type:    "docx",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockDocs.AssertNotCalled(t, "Create")
}

func TestImportURL_Success(t *testing.T) {
	mockDocs := new(MockDocumentService)
	handler := NewDocumentHandler(mockDocs, new(MockAnnotationService))
	router := setupRouter()
	router.POST("/documents/import-url", fakeAuth("alice"), handler.ImportURL)

	imported := &models.Document{
		ID:   "doc-1",
		Name: "rfc.txt",
		Type: models.DocumentTypeTxt,
	}
	mockDocs.On("ImportFromURL", "https://example.com/rfc.txt").Return(imported, nil)

	w := postJSON(router, "/documents/import-url", dto.ImportDocumentRequest{
		URL: "https://example.com/rfc.txt",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	mockDocs.AssertExpectations(t)
}

func TestImportURL_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"scheme rejected", importer.ErrScheme, http.StatusBadRequest},
		{"not text", importer.ErrNotText, http.StatusUnsupportedMediaType},
		{"too large", importer.ErrTooLarge, http.StatusRequestEntityTooLarge},
		{"upstream failure", importer.ErrUpstream, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockDocs := new(MockDocumentService)
			handler := NewDocumentHandler(mockDocs, new(MockAnnotationService))
			router := setupRouter()
			router.POST("/documents/import-url", fakeAuth("alice"), handler.ImportURL)

			mockDocs.On("ImportFromURL", "https://example.com/file").Return(nil, tc.err)

			w := postJSON(router, "/documents/import-url", dto.ImportDocumentRequest{
				URL: "https://example.com/file",
			})

			assert.Equal(t, tc.code, w.Code)
			mockDocs.AssertExpectations(t)
		})
	}
}

func TestDeleteDocument(t *testing.T) {
	mockDocs := new(MockDocumentService)
	handler := NewDocumentHandler(mockDocs, new(MockAnnotationService))
	router := setupRouter()
	router.DELETE("/documents/:id", fakeAuth("alice"), handler.Delete)

	mockDocs.On("Delete", "doc-1").Return(nil)

	req, _ := http.NewRequest("DELETE", "/documents/doc-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockDocs.AssertExpectations(t)
}

func TestAnnotationsView(t *testing.T) {
	mockDocs := new(MockDocumentService)
	mockAnn := new(MockAnnotationService)
	handler := NewDocumentHandler(mockDocs, mockAnn)
	router := setupRouter()
	router.GET("/documents/:id/annotations", handler.Annotations)

	view := &service.DocumentView{
		DocumentID:       testDocID,
		LineCount:        12,
		Lines:            []service.LineThreads{},
		HighlightedLines: []int{3, 8},
		RelationCounts:   map[int]int{3: 1},
	}
	mockAnn.On("BuildView", testDocID).Return(view, nil)

	req, _ := http.NewRequest("GET", "/documents/"+testDocID+"/annotations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response service.DocumentView
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, 12, response.LineCount)
	assert.Equal(t, []int{3, 8}, response.HighlightedLines)

	mockAnn.AssertExpectations(t)
}
