package memory

import (
	"github.com/linemark/linemark/internal/models"
	"github.com/linemark/linemark/internal/repository"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return repository.ErrDuplicate
		}
		if user.Email != nil && u.Email != nil && *u.Email == *user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = newID(user.ID)
	user.CreatedAt = stamp(user.CreatedAt)
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) FindByID(id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *userRepo) FindByUsername(username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}
