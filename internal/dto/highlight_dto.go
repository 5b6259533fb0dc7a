package dto

import "github.com/linemark/linemark/internal/models"

// ToggleHighlightRequest: payload for flipping a line highlight
type ToggleHighlightRequest struct {
	DocumentID string `json:"document_id" binding:"required,uuid"`
	LineNumber int    `json:"line_number" binding:"required,gt=0"`
}

// ToggleHighlightResponse reports the outcome of a toggle. Highlight is
// null when the toggle deleted an existing marker.
type ToggleHighlightResponse struct {
	Highlight *models.Highlight `json:"highlight"`
	Action    string            `json:"action"` // created or deleted
}
