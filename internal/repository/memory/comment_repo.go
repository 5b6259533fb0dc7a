package memory

import (
	"sort"

	"github.com/linemark/linemark/internal/models"
	"github.com/linemark/linemark/internal/repository"
)

type commentRepo struct {
	s *Store
}

func (r *commentRepo) Create(comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comment.ID = newID(comment.ID)
	comment.CreatedAt = stamp(comment.CreatedAt)
	r.s.comments[comment.ID] = *comment
	return nil
}

func (r *commentRepo) GetByID(id string) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comment, ok := r.s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &comment, nil
}

func (r *commentRepo) ListByDocument(documentID string) ([]models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comments := make([]models.Comment, 0)
	for _, c := range r.s.comments {
		if c.DocumentID == documentID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *commentRepo) Update(comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[comment.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.comments[comment.ID] = *comment
	return nil
}

func (r *commentRepo) HasReplies(commentID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.comments {
		if c.ParentCommentID != nil && *c.ParentCommentID == commentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *commentRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.comments, id)
	return nil
}
