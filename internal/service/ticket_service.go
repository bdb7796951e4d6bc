package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eligue-assistance/internal/models"
	"eligue-assistance/internal/repository"
)

// TicketService is the sole writer of ticket status and assignment.
type TicketService struct {
	tickets repository.TicketRepository
	users   repository.UserRepository
	apps    repository.ApplicationRepository

	now   func() time.Time
	newID func() string
}

func NewTicketService(tickets repository.TicketRepository, users repository.UserRepository, apps repository.ApplicationRepository) *TicketService {
	return &TicketService{
		tickets: tickets,
		users:   users,
		apps:    apps,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// WithClock replaces the time and id providers, for deterministic tests.
func (s *TicketService) WithClock(now func() time.Time, newID func() string) *TicketService {
	s.now = now
	s.newID = newID
	return s
}

type CreateTicketInput struct {
	Title       string
	Application string
	Location    string
	Description string
	Attachments []string
}

func (s *TicketService) Create(ctx context.Context, actor Actor, in CreateTicketInput) (*models.Ticket, error) {
	if actor.ID == "" {
		return nil, ErrForbidden
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	known, err := s.apps.Contains(ctx, in.Application)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, fmt.Errorf("%w: unknown application %q", ErrNotFound, in.Application)
	}

	creator, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, ErrNotFound
	}

	t := &models.Ticket{
		ID:          s.newID(),
		Title:       in.Title,
		Application: in.Application,
		Location:    strings.TrimSpace(in.Location),
		Description: in.Description,
		Attachments: in.Attachments,
		Status:      models.StatusCreated,
		CreatedAt:   s.now(),
		CreatedBy:   creator.Snapshot(),
	}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Assign moves a ticket to in_progress and snapshots the chosen
// technician. Reassigning a non-closed ticket re-sets the snapshot
// without touching the status; a closed ticket is terminal.
func (s *TicketService) Assign(ctx context.Context, actor Actor, ticketID, technicianID string) (*models.Ticket, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if technicianID == "" {
		return nil, ErrUnknownTechnician
	}

	t, err := s.tickets.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	if t.Status == models.StatusClosed {
		return nil, fmt.Errorf("%w: ticket %s is closed", ErrInvalidTransition, t.SerialNumber)
	}

	tech, err := s.users.GetByID(ctx, technicianID)
	if err != nil {
		return nil, err
	}
	if tech == nil || tech.Role != models.RoleTechnician {
		return nil, ErrUnknownTechnician
	}

	snap := tech.Snapshot()
	t.AssignedTo = &snap
	t.Status = models.StatusInProgress
	if err := s.tickets.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Close is allowed only for the assigned technician, only from
// in_progress. Closed is terminal.
func (s *TicketService) Close(ctx context.Context, actor Actor, ticketID string) (*models.Ticket, error) {
	t, err := s.tickets.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	if actor.Role != models.RoleTechnician || t.AssignedTo == nil || t.AssignedTo.ID != actor.ID {
		return nil, ErrForbidden
	}
	if t.Status != models.StatusInProgress {
		return nil, fmt.Errorf("%w: ticket %s is %s", ErrInvalidTransition, t.SerialNumber, t.Status)
	}
	t.Status = models.StatusClosed
	if err := s.tickets.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TicketService) Get(ctx context.Context, actor Actor, ticketID string) (*models.Ticket, error) {
	t, err := s.tickets.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	if !canSeeTicket(actor, t) {
		return nil, ErrForbidden
	}
	return t, nil
}

func canSeeTicket(actor Actor, t *models.Ticket) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	if t.CreatedBy.ID == actor.ID {
		return true
	}
	return t.AssignedTo != nil && t.AssignedTo.ID == actor.ID
}

// List scopes the result by role: users see their own tickets newest
// first, technicians their open assignments oldest first, admins
// everything with the optional search and date-range filters.
func (s *TicketService) List(ctx context.Context, actor Actor, q string, from, to time.Time) ([]models.Ticket, error) {
	f := repository.TicketFilter{Q: q, From: from, To: to}
	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleTechnician:
		f.AssigneeID = actor.ID
		f.ExcludeClosed = true
		f.OldestFirst = true
	case models.RoleUser:
		f.CreatedByID = actor.ID
	default:
		return nil, ErrForbidden
	}
	return s.tickets.List(ctx, f)
}
