package repository

import (
	"context"
	"errors"

	"eligue-assistance/internal/models"
)

// ErrLoginTaken is returned by user Create/Update when another user
// already holds the login.
var ErrLoginTaken = errors.New("login already taken")

type UserRepository interface {
	Create(ctx context.Context, u *models.User, passwordHash string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, string /*passwordHash*/, error)
	List(ctx context.Context, q, role string) ([]models.User, error)
	Update(ctx context.Context, u *models.User, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

type TicketRepository interface {
	// Create stores the ticket and assigns its serial number from the
	// store's monotonic counter.
	Create(ctx context.Context, t *models.Ticket) error
	Get(ctx context.Context, id string) (*models.Ticket, error)
	Update(ctx context.Context, t *models.Ticket) error
	List(ctx context.Context, f TicketFilter) ([]models.Ticket, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, inv *models.Invoice) error
	Get(ctx context.Context, id string) (*models.Invoice, error)
	GetByTicketID(ctx context.Context, ticketID string) (*models.Invoice, error)
	Update(ctx context.Context, inv *models.Invoice) error
	List(ctx context.Context, f InvoiceFilter) ([]models.Invoice, error)
}

type ApplicationRepository interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, name string) error
	Contains(ctx context.Context, name string) (bool, error)
}
