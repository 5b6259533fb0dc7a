// Package repository defines the persistence interfaces for all entities
// and their GORM-backed implementations. The in-memory implementations
// used when no database is configured live in the memory subpackage.
package repository

import (
	"errors"

	"github.com/linemark/linemark/internal/models"
)

// ErrNotFound is returned by every implementation when the referenced
// entity does not exist. GORM and Redis lookup failures are translated
// to it so callers never depend on a backend-specific error.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a uniqueness constraint is violated,
// e.g. registering an already-taken username.
var ErrDuplicate = errors.New("record already exists")

// DocumentRepository persists documents. List returns documents ordered
// by upload time descending.
type DocumentRepository interface {
	Create(doc *models.Document) error
	GetByID(id string) (*models.Document, error)
	List() ([]models.Document, error)
	Delete(id string) error
}

// CommentRepository persists comments. ListByDocument returns comments
// ordered by creation time ascending.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id string) (*models.Comment, error)
	ListByDocument(documentID string) ([]models.Comment, error)
	Update(comment *models.Comment) error
	HasReplies(commentID string) (bool, error)
	Delete(id string) error
}

// HighlightRepository persists highlights. No list order is guaranteed.
type HighlightRepository interface {
	Create(highlight *models.Highlight) error
	FindByLine(documentID string, lineNumber int) (*models.Highlight, error)
	ListByDocument(documentID string) ([]models.Highlight, error)
	Delete(id string) error
}

// RelationRepository persists relations and their spans. No list order
// is guaranteed.
type RelationRepository interface {
	Create(relation *models.Relation) error
	GetByID(id string) (*models.Relation, error)
	ListByDocument(documentID string) ([]models.Relation, error)
	Delete(id string) error

	CreateSpan(span *models.RelationSpan) error
	ListSpansByRelation(relationID string) ([]models.RelationSpan, error)
	DeleteSpan(id string) error
}

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
}

// RefreshTokenRepository stores refresh tokens. Save must reject nothing;
// Find must not return revoked tokens as valid (callers check Revoked).
type RefreshTokenRepository interface {
	Save(token *models.RefreshToken) error
	Find(token string) (*models.RefreshToken, error)
	Revoke(token string) error
}
