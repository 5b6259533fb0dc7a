package memory

import (
	"github.com/linemark/linemark/internal/models"
	"github.com/linemark/linemark/internal/repository"
)

type tokenRepo struct {
	s *Store
}

func (r *tokenRepo) Save(token *models.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	token.ID = newID(token.ID)
	token.CreatedAt = stamp(token.CreatedAt)
	r.s.tokens[token.Token] = *token
	return nil
}

func (r *tokenRepo) Find(token string) (*models.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rt, ok := r.s.tokens[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rt, nil
}

func (r *tokenRepo) Revoke(token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rt, ok := r.s.tokens[token]
	if !ok {
		return repository.ErrNotFound
	}
	rt.Revoked = true
	r.s.tokens[token] = rt
	return nil
}
