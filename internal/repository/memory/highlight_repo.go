package memory

import (
	"github.com/linemark/linemark/internal/models"
	"github.com/linemark/linemark/internal/repository"
)

type highlightRepo struct {
	s *Store
}

func (r *highlightRepo) Create(highlight *models.Highlight) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, h := range r.s.highlights {
		if h.DocumentID == highlight.DocumentID && h.LineNumber == highlight.LineNumber {
			return repository.ErrDuplicate
		}
	}
	highlight.ID = newID(highlight.ID)
	r.s.highlights[highlight.ID] = *highlight
	return nil
}

func (r *highlightRepo) FindByLine(documentID string, lineNumber int) (*models.Highlight, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, h := range r.s.highlights {
		if h.DocumentID == documentID && h.LineNumber == lineNumber {
			found := h
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *highlightRepo) ListByDocument(documentID string) ([]models.Highlight, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	highlights := make([]models.Highlight, 0)
	for _, h := range r.s.highlights {
		if h.DocumentID == documentID {
			highlights = append(highlights, h)
		}
	}
	return highlights, nil
}

func (r *highlightRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.highlights[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.highlights, id)
	return nil
}
