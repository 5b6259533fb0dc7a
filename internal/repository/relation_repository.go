package repository

import (
	"errors"

	"github.com/linemark/linemark/internal/models"

	"gorm.io/gorm"
)

// relationRepository is the GORM implementation of RelationRepository.
type relationRepository struct {
	db *gorm.DB
}

func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) Create(relation *models.Relation) error {
	return r.db.Create(relation).Error
}

func (r *relationRepository) GetByID(id string) (*models.Relation, error) {
	var relation models.Relation
	err := r.db.Preload("Spans").First(&relation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &relation, nil
}

func (r *relationRepository) ListByDocument(documentID string) ([]models.Relation, error) {
	var relations []models.Relation
	err := r.db.Where("document_id = ?", documentID).
		Preload("Spans").
		Find(&relations).Error
	if err != nil {
		return nil, err
	}
	return relations, nil
}

// Delete removes the relation; its spans go with it via the FK cascade.
func (r *relationRepository) Delete(id string) error {
	result := r.db.Delete(&models.Relation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *relationRepository) CreateSpan(span *models.RelationSpan) error {
	return r.db.Create(span).Error
}

func (r *relationRepository) ListSpansByRelation(relationID string) ([]models.RelationSpan, error) {
	var spans []models.RelationSpan
	if err := r.db.Where("relation_id = ?", relationID).Find(&spans).Error; err != nil {
		return nil, err
	}
	return spans, nil
}

func (r *relationRepository) DeleteSpan(id string) error {
	result := r.db.Delete(&models.RelationSpan{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
