package repository

import (
	"errors"

	"github.com/linemark/linemark/internal/models"

	"gorm.io/gorm"
)

// commentRepository is the GORM implementation of CommentRepository.
type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) GetByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByDocument(documentID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("document_id = ?", documentID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// HasReplies reports whether any comment references the given comment as
// its parent. Used to refuse deleting a comment that still has replies.
func (r *commentRepository) HasReplies(commentID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("parent_comment_id = ?", commentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *commentRepository) Delete(id string) error {
	result := r.db.Delete(&models.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
