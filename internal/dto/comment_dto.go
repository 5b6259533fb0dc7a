package dto

// CreateCommentRequest: payload for creating a comment. The author is
// taken from the authenticated user, never from the body.
type CreateCommentRequest struct {
	DocumentID      string  `json:"document_id" binding:"required,uuid"`
	LineNumber      int     `json:"line_number" binding:"required,gt=0"`
	Content         string  `json:"content" binding:"required,min=1,max=5000"`
	ParentCommentID *string `json:"parent_comment_id" binding:"omitempty,uuid"`
}

// UpdateCommentRequest: payload for editing a comment's content
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}
