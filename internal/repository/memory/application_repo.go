package memory

import (
	"context"
	"sort"

	"eligue-assistance/internal/repository"
)

// ApplicationRepo manages the append-only catalog of application names.
// Names are case-sensitive and kept sorted.
type ApplicationRepo struct{ s *Store }

func NewApplicationRepo(s *Store) repository.ApplicationRepository { return &ApplicationRepo{s: s} }

func (r *ApplicationRepo) List(ctx context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]string(nil), r.s.apps...), nil
}

func (r *ApplicationRepo) Add(ctx context.Context, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.apps {
		if a == name {
			return nil // dedup, not an error
		}
	}
	r.s.apps = append(r.s.apps, name)
	sort.Strings(r.s.apps)
	return nil
}

func (r *ApplicationRepo) Contains(ctx context.Context, name string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.apps {
		if a == name {
			return true, nil
		}
	}
	return false, nil
}
