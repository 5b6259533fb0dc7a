package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/linemark/linemark/internal/dto"
	"github.com/linemark/linemark/internal/models"
	"github.com/linemark/linemark/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestToggleHighlight_Created(t *testing.T) {
	mockSvc := new(MockAnnotationService)
	handler := NewHighlightHandler(mockSvc)
	router := setupRouter()
	router.POST("/highlights/toggle", fakeAuth("alice"), handler.Toggle)

	highlight := &models.Highlight{
		ID:         "highlight-1",
		DocumentID: testDocID,
		LineNumber: 7,
	}
	mockSvc.On("ToggleHighlight", testDocID, 7).Return(highlight, "created", nil)

	w := postJSON(router, "/highlights/toggle", dto.ToggleHighlightRequest{
		DocumentID: testDocID,
		LineNumber: 7,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ToggleHighlightResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "created", response.Action)
	assert.NotNil(t, response.Highlight)
	assert.Equal(t, 7, response.Highlight.LineNumber)

	mockSvc.AssertExpectations(t)
}

func TestToggleHighlight_Deleted(t *testing.T) {
	mockSvc := new(MockAnnotationService)
	handler := NewHighlightHandler(mockSvc)
	router := setupRouter()
	router.POST("/highlights/toggle", fakeAuth("alice"), handler.Toggle)

	mockSvc.On("ToggleHighlight", testDocID, 7).Return(nil, "deleted", nil)

	w := postJSON(router, "/highlights/toggle", dto.ToggleHighlightRequest{
		DocumentID: testDocID,
		LineNumber: 7,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ToggleHighlightResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "deleted", response.Action)
	assert.Nil(t, response.Highlight)

	mockSvc.AssertExpectations(t)
}

func TestToggleHighlight_DocumentNotFound(t *testing.T) {
	mockSvc := new(MockAnnotationService)
	handler := NewHighlightHandler(mockSvc)
	router := setupRouter()
	router.POST("/highlights/toggle", fakeAuth("alice"), handler.Toggle)

	mockSvc.On("ToggleHighlight", testDocID, 7).Return(nil, "", repository.ErrNotFound)

	w := postJSON(router, "/highlights/toggle", dto.ToggleHighlightRequest{
		DocumentID: testDocID,
		LineNumber: 7,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestToggleHighlight_InvalidBody(t *testing.T) {
	mockSvc := new(MockAnnotationService)
	handler := NewHighlightHandler(mockSvc)
	router := setupRouter()
	router.POST("/highlights/toggle", fakeAuth("alice"), handler.Toggle)

	w := postJSON(router, "/highlights/toggle", map[string]any{
		"document_id": "not-a-uuid",
		"line_number": 7,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "ToggleHighlight")
}
