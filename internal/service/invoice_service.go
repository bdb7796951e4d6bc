package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"eligue-assistance/internal/models"
	"eligue-assistance/internal/repository"
)

// Amount bounds for the initial pricing draw, inclusive.
const (
	minInitialAmount = 50
	maxInitialAmount = 150
)

type InvoiceService struct {
	invoices repository.InvoiceRepository
	tickets  repository.TicketRepository

	now   func() time.Time
	newID func() string
	rng   *rand.Rand
}

func NewInvoiceService(invoices repository.InvoiceRepository, tickets repository.TicketRepository) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		tickets:  tickets,
		now:      time.Now,
		newID:    uuid.NewString,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *InvoiceService) WithProviders(now func() time.Time, newID func() string, rng *rand.Rand) *InvoiceService {
	s.now = now
	s.newID = newID
	s.rng = rng
	return s
}

// Validate issues the single invoice for a closed, assigned ticket. A
// second call for the same ticket returns ErrDuplicateInvoice and leaves
// the existing record untouched; the UI treats that as an expected
// re-click, not a failure.
func (s *InvoiceService) Validate(ctx context.Context, actor Actor, ticketID string) (*models.Invoice, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	t, err := s.tickets.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	if t.Status != models.StatusClosed || t.AssignedTo == nil {
		return nil, fmt.Errorf("%w: ticket %s is not closed", ErrInvalidTransition, t.SerialNumber)
	}
	existing, err := s.invoices.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateInvoice
	}

	inv := &models.Invoice{
		ID:                 s.newID(),
		TicketID:           t.ID,
		TicketSerialNumber: t.SerialNumber,
		TechnicianName:     t.AssignedTo.FullName,
		Date:               s.now(),
		// Placeholder pricing model: uniform integer in [50,150].
		Amount: float64(minInitialAmount + s.rng.Intn(maxInitialAmount-minInitialAmount+1)),
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// UpdateAmount overwrites the invoice amount. This is the one place money
// correctness matters, so the engine rejects negative and non-finite
// values instead of trusting the caller.
func (s *InvoiceService) UpdateAmount(ctx context.Context, actor Actor, invoiceID string, amount float64) (*models.Invoice, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	inv, err := s.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrNotFound
	}
	inv.Amount = amount
	if err := s.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceService) Get(ctx context.Context, actor Actor, invoiceID string) (*models.Invoice, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	inv, err := s.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrNotFound
	}
	return inv, nil
}

func (s *InvoiceService) List(ctx context.Context, actor Actor, q string, from, to time.Time) ([]models.Invoice, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.invoices.List(ctx, repository.InvoiceFilter{Q: q, From: from, To: to})
}

// Document returns the (invoice, ticket) pair the printing collaborator
// needs to render the intervention invoice.
func (s *InvoiceService) Document(ctx context.Context, actor Actor, invoiceID string) (*models.Invoice, *models.Ticket, error) {
	if actor.Role != models.RoleAdmin {
		return nil, nil, ErrForbidden
	}
	inv, err := s.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, ErrNotFound
	}
	t, err := s.tickets.Get(ctx, inv.TicketID)
	if err != nil {
		return nil, nil, err
	}
	if t == nil {
		return nil, nil, ErrNotFound
	}
	return inv, t, nil
}
