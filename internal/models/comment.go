package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	DocumentID      string    `json:"document_id" gorm:"type:uuid;not null;index"`
	LineNumber      int       `json:"line_number" gorm:"not null;check:line_number > 0"`
	Author          string    `json:"author" gorm:"not null"` // username captured at creation time
	Content         string    `json:"content" gorm:"not null;type:text"`
	ParentCommentID *string   `json:"parent_comment_id" gorm:"type:uuid;index"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Document Document `json:"-" gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// IsReply reports whether the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil && *c.ParentCommentID != ""
}
