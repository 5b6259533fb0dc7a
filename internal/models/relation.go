package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Relation links one or more line spans of a document to an external URL.
type Relation struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	DocumentID string    `json:"document_id" gorm:"type:uuid;not null;index"`
	URL        string    `json:"url" gorm:"not null"`
	Note       *string   `json:"note"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Document Document       `json:"-" gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE;"`
	Spans    []RelationSpan `json:"spans,omitempty" gorm:"foreignKey:RelationID;constraint:OnDelete:CASCADE;"`
}

func (Relation) TableName() string {
	return "relations"
}

func (r *Relation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// RelationSpan is one contiguous inclusive line range of a relation.
// Invariant: 1 <= StartLine <= EndLine.
type RelationSpan struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid"`
	RelationID string `json:"relation_id" gorm:"type:uuid;not null;index"`
	StartLine  int    `json:"start_line" gorm:"not null;check:start_line > 0"`
	EndLine    int    `json:"end_line" gorm:"not null;check:end_line >= start_line"`
}

func (RelationSpan) TableName() string {
	return "relation_spans"
}

func (s *RelationSpan) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
