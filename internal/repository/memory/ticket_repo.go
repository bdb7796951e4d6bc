package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"eligue-assistance/internal/models"
	"eligue-assistance/internal/repository"
)

type TicketRepo struct{ s *Store }

func NewTicketRepo(s *Store) repository.TicketRepository { return &TicketRepo{s: s} }

// Create appends the ticket and stamps its serial number from the current
// collection length, so serials are strictly increasing per store.
func (r *TicketRepo) Create(ctx context.Context, t *models.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.SerialNumber = serialNumber(len(r.s.tickets) + 1)
	r.s.tickets = append(r.s.tickets, cloneTicket(*t))
	return nil
}

func (r *TicketRepo) Get(ctx context.Context, id string) (*models.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.tickets {
		if t.ID == id {
			out := cloneTicket(t)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *TicketRepo) Update(ctx context.Context, t *models.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.tickets {
		if r.s.tickets[i].ID == t.ID {
			r.s.tickets[i] = cloneTicket(*t)
			return nil
		}
	}
	return errors.New("ticket not found")
}

func (r *TicketRepo) List(ctx context.Context, f repository.TicketFilter) ([]models.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q := strings.ToLower(f.Q)
	out := make([]models.Ticket, 0, len(r.s.tickets))
	for _, t := range r.s.tickets {
		if f.CreatedByID != "" && t.CreatedBy.ID != f.CreatedByID {
			continue
		}
		if f.AssigneeID != "" && (t.AssignedTo == nil || t.AssignedTo.ID != f.AssigneeID) {
			continue
		}
		if f.ExcludeClosed && t.Status == models.StatusClosed {
			continue
		}
		if !f.From.IsZero() && t.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && t.CreatedAt.After(f.To) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(t.SerialNumber), q) &&
			!strings.Contains(strings.ToLower(t.Title), q) {
			continue
		}
		out = append(out, cloneTicket(t))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if f.OldestFirst {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
