package dto

// CreateDocumentRequest: payload for uploading a document
type CreateDocumentRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
	Type    string `json:"type" binding:"required,oneof=pdf txt url"`
}

// ImportDocumentRequest: payload for importing a document from a URL
type ImportDocumentRequest struct {
	URL string `json:"url" binding:"required,url"`
}
