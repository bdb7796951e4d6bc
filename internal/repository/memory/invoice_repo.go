package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"eligue-assistance/internal/models"
	"eligue-assistance/internal/repository"
)

type InvoiceRepo struct{ s *Store }

func NewInvoiceRepo(s *Store) repository.InvoiceRepository { return &InvoiceRepo{s: s} }

func (r *InvoiceRepo) Create(ctx context.Context, inv *models.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.invoices {
		if existing.TicketID == inv.TicketID {
			return errors.New("invoice already exists for ticket")
		}
	}
	r.s.invoices = append(r.s.invoices, *inv)
	return nil
}

func (r *InvoiceRepo) Get(ctx context.Context, id string) (*models.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, inv := range r.s.invoices {
		if inv.ID == id {
			out := inv
			return &out, nil
		}
	}
	return nil, nil
}

func (r *InvoiceRepo) GetByTicketID(ctx context.Context, ticketID string) (*models.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, inv := range r.s.invoices {
		if inv.TicketID == ticketID {
			out := inv
			return &out, nil
		}
	}
	return nil, nil
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *models.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.invoices {
		if r.s.invoices[i].ID == inv.ID {
			r.s.invoices[i] = *inv
			return nil
		}
	}
	return errors.New("invoice not found")
}

func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]models.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q := strings.ToLower(f.Q)
	out := make([]models.Invoice, 0, len(r.s.invoices))
	for _, inv := range r.s.invoices {
		if !f.From.IsZero() && inv.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && inv.Date.After(f.To) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(inv.TicketSerialNumber), q) {
			continue
		}
		out = append(out, inv)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}
