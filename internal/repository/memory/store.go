// Package memory provides in-memory implementations of the repository
// interfaces, used when no DATABASE_URL is configured. All entity maps
// share one mutex; cascades that Postgres enforces with foreign keys are
// applied by hand here.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linemark/linemark/internal/models"
	"github.com/linemark/linemark/internal/repository"
)

type Store struct {
	mu            sync.Mutex
	documents     map[string]models.Document
	comments      map[string]models.Comment
	highlights    map[string]models.Highlight
	relations     map[string]models.Relation
	relationSpans map[string]models.RelationSpan
	users         map[string]models.User
	tokens        map[string]models.RefreshToken // keyed by token value
}

func NewStore() *Store {
	return &Store{
		documents:     make(map[string]models.Document),
		comments:      make(map[string]models.Comment),
		highlights:    make(map[string]models.Highlight),
		relations:     make(map[string]models.Relation),
		relationSpans: make(map[string]models.RelationSpan),
		users:         make(map[string]models.User),
		tokens:        make(map[string]models.RefreshToken),
	}
}

func (s *Store) Documents() repository.DocumentRepository   { return &documentRepo{s} }
func (s *Store) Comments() repository.CommentRepository     { return &commentRepo{s} }
func (s *Store) Highlights() repository.HighlightRepository { return &highlightRepo{s} }
func (s *Store) Relations() repository.RelationRepository   { return &relationRepo{s} }
func (s *Store) Users() repository.UserRepository           { return &userRepo{s} }
func (s *Store) Tokens() repository.RefreshTokenRepository  { return &tokenRepo{s} }

// newID mirrors the BeforeCreate uuid hook that only fires under GORM.
func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
