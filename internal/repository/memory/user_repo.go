package memory

import (
	"context"
	"errors"
	"strings"

	"eligue-assistance/internal/models"
	"eligue-assistance/internal/repository"
)

type UserRepo struct{ s *Store }

func NewUserRepo(s *Store) repository.UserRepository { return &UserRepo{s: s} }

func (r *UserRepo) Create(ctx context.Context, u *models.User, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.users {
		if rec.user.Login == u.Login {
			return repository.ErrLoginTaken
		}
	}
	r.s.users = append(r.s.users, userRecord{user: cloneUser(*u), passwordHash: passwordHash})
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.users {
		if rec.user.ID == id {
			u := cloneUser(rec.user)
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*models.User, string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.users {
		if rec.user.Login == login {
			u := cloneUser(rec.user)
			return &u, rec.passwordHash, nil
		}
	}
	return nil, "", nil
}

func (r *UserRepo) List(ctx context.Context, q, role string) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q = strings.ToLower(q)
	out := make([]models.User, 0, len(r.s.users))
	for _, rec := range r.s.users {
		if role != "" && rec.user.Role != role {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(rec.user.FullName), q) &&
			!strings.Contains(strings.ToLower(rec.user.Login), q) {
			continue
		}
		out = append(out, cloneUser(rec.user))
	}
	return out, nil
}

// Update overwrites the stored user. An empty passwordHash keeps the
// current credential.
func (r *UserRepo) Update(ctx context.Context, u *models.User, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.users {
		if rec.user.Login == u.Login && rec.user.ID != u.ID {
			return repository.ErrLoginTaken
		}
	}
	for i, rec := range r.s.users {
		if rec.user.ID == u.ID {
			hash := rec.passwordHash
			if passwordHash != "" {
				hash = passwordHash
			}
			r.s.users[i] = userRecord{user: cloneUser(*u), passwordHash: hash}
			return nil
		}
	}
	return errors.New("user not found")
}

// Delete is a hard delete. Tickets and invoices keep their snapshots of
// the removed user.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, rec := range r.s.users {
		if rec.user.ID == id {
			r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
			return nil
		}
	}
	return errors.New("user not found")
}
