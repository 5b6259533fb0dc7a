package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Highlight is a shared per-document line marker. At most one row exists
// per (document_id, line_number) pair; toggling flips it.
type Highlight struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid"`
	DocumentID string `json:"document_id" gorm:"type:uuid;not null;uniqueIndex:idx_highlights_doc_line"`
	LineNumber int    `json:"line_number" gorm:"not null;uniqueIndex:idx_highlights_doc_line;check:line_number > 0"`

	// Associations
	Document Document `json:"-" gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE;"`
}

func (Highlight) TableName() string {
	return "highlights"
}

func (h *Highlight) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}
