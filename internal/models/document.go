package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document source types.
const (
	DocumentTypePDF = "pdf"
	DocumentTypeTxt = "txt"
	DocumentTypeURL = "url"
)

type Document struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name       string    `json:"name" gorm:"not null"`
	Content    string    `json:"content" gorm:"not null;type:text"`
	Type       string    `json:"type" gorm:"not null"` // pdf, txt, url
	UploadedAt time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}

// BeforeCreate hook to set UUID before creating a Document
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// LineCount returns the number of lines in the document content.
// Lines are 1-based and split on newline; a trailing newline does not
// add an empty final line.
func (d *Document) LineCount() int {
	if d.Content == "" {
		return 0
	}
	n := 1
	for _, r := range d.Content {
		if r == '\n' {
			n++
		}
	}
	if len(d.Content) > 0 && d.Content[len(d.Content)-1] == '\n' {
		n--
	}
	return n
}
