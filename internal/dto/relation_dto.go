package dto

// SpanInput is one explicit inclusive line range.
type SpanInput struct {
	StartLine int `json:"start_line" binding:"required,gt=0"`
	EndLine   int `json:"end_line" binding:"required,gtefield=StartLine"`
}

// CreateRelationRequest: payload for linking document lines to a URL.
// Callers may send raw selected lines (normalized server-side into
// minimal spans), pre-built spans, or both; at least one line or span
// is required.
type CreateRelationRequest struct {
	DocumentID string      `json:"document_id" binding:"required,uuid"`
	URL        string      `json:"url" binding:"required,url"`
	Note       *string     `json:"note" binding:"omitempty,max=2000"`
	Lines      []int       `json:"lines" binding:"omitempty,dive,gt=0"`
	Spans      []SpanInput `json:"spans" binding:"omitempty,dive"`
}

// AddRelationSpanRequest: payload for appending a span to a relation
type AddRelationSpanRequest struct {
	StartLine int `json:"start_line" binding:"required,gt=0"`
	EndLine   int `json:"end_line" binding:"required,gtefield=StartLine"`
}
