package repository

import (
	"errors"

	"github.com/linemark/linemark/internal/models"

	"gorm.io/gorm"
)

// highlightRepository is the GORM implementation of HighlightRepository.
type highlightRepository struct {
	db *gorm.DB
}

func NewHighlightRepository(db *gorm.DB) HighlightRepository {
	return &highlightRepository{db: db}
}

func (r *highlightRepository) Create(highlight *models.Highlight) error {
	return r.db.Create(highlight).Error
}

func (r *highlightRepository) FindByLine(documentID string, lineNumber int) (*models.Highlight, error) {
	var highlight models.Highlight
	err := r.db.Where("document_id = ? AND line_number = ?", documentID, lineNumber).
		First(&highlight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &highlight, nil
}

func (r *highlightRepository) ListByDocument(documentID string) ([]models.Highlight, error) {
	var highlights []models.Highlight
	if err := r.db.Where("document_id = ?", documentID).Find(&highlights).Error; err != nil {
		return nil, err
	}
	return highlights, nil
}

func (r *highlightRepository) Delete(id string) error {
	result := r.db.Delete(&models.Highlight{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
