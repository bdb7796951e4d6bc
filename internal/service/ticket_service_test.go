package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"eligue-assistance/internal/models"
	"eligue-assistance/internal/repository/memory"
)

type fixture struct {
	store    *memory.Store
	tickets  *TicketService
	invoices *InvoiceService
	reports  *ReportService
}

// newFixture builds services on a fresh store with a deterministic clock
// and id sequence.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New([]string{"E-Licences", "E-Competitions"})

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	now := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	seq := 0
	newID := func() string {
		seq++
		return fmt.Sprintf("id-%04d", seq)
	}

	userRepo := memory.NewUserRepo(store)
	ticketRepo := memory.NewTicketRepo(store)
	invoiceRepo := memory.NewInvoiceRepo(store)
	appRepo := memory.NewApplicationRepo(store)

	return &fixture{
		store:    store,
		tickets:  NewTicketService(ticketRepo, userRepo, appRepo).WithClock(now, newID),
		invoices: NewInvoiceService(invoiceRepo, ticketRepo).WithProviders(now, newID, testRand(1)),
		reports:  NewReportService(userRepo, ticketRepo),
	}
}

func (f *fixture) addUser(t *testing.T, id, login, role string) Actor {
	t.Helper()
	err := memory.NewUserRepo(f.store).Create(context.Background(), &models.User{
		ID:       id,
		Login:    login,
		FullName: "User " + login,
		Role:     role,
	}, "x")
	if err != nil {
		t.Fatalf("addUser(%s): %v", login, err)
	}
	return Actor{ID: id, Role: role}
}

func (f *fixture) createTicket(t *testing.T, actor Actor) *models.Ticket {
	t.Helper()
	tk, err := f.tickets.Create(context.Background(), actor, CreateTicketInput{
		Title:       "imprimante en panne",
		Application: "E-Licences",
		Description: "ne repond plus",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return tk
}

func TestCreate_SerialNumbers(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, "u1", "jdupont", models.RoleUser)

	for i := 1; i <= 3; i++ {
		tk := f.createTicket(t, user)
		want := fmt.Sprintf("TI-%04d", i)
		if tk.SerialNumber != want {
			t.Errorf("serial %d = %q, want %q", i, tk.SerialNumber, want)
		}
		if tk.Status != models.StatusCreated {
			t.Errorf("status = %q, want %q", tk.Status, models.StatusCreated)
		}
		if tk.AssignedTo != nil {
			t.Error("new ticket must have no assignee")
		}
		if tk.CreatedBy.ID != "u1" {
			t.Errorf("createdBy = %q, want u1", tk.CreatedBy.ID)
		}
	}
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, "u1", "jdupont", models.RoleUser)
	ctx := context.Background()

	if _, err := f.tickets.Create(ctx, Actor{}, CreateTicketInput{Title: "x", Application: "E-Licences", Description: "y"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("unauthenticated create: err = %v, want ErrForbidden", err)
	}
	if _, err := f.tickets.Create(ctx, user, CreateTicketInput{Title: "x", Application: "Inconnue", Description: "y"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown application: err = %v, want ErrNotFound", err)
	}
	if _, err := f.tickets.Create(ctx, user, CreateTicketInput{Application: "E-Licences", Description: "y"}); err == nil {
		t.Error("empty title: want error")
	}
}

func TestAssign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "u1", "jdupont", models.RoleUser)
	admin := f.addUser(t, "a1", "admin", models.RoleAdmin)
	tech := f.addUser(t, "t1", "tech1", models.RoleTechnician)
	tech2 := f.addUser(t, "t2", "tech2", models.RoleTechnician)

	tk := f.createTicket(t, user)

	// only admins assign
	if _, err := f.tickets.Assign(ctx, user, tk.ID, tech.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("assign by user: err = %v, want ErrForbidden", err)
	}
	// empty and unknown assignees are rejected before any mutation
	if _, err := f.tickets.Assign(ctx, admin, tk.ID, ""); !errors.Is(err, ErrUnknownTechnician) {
		t.Errorf("assign empty: err = %v, want ErrUnknownTechnician", err)
	}
	if _, err := f.tickets.Assign(ctx, admin, tk.ID, "u1"); !errors.Is(err, ErrUnknownTechnician) {
		t.Errorf("assign non-technician: err = %v, want ErrUnknownTechnician", err)
	}

	got, err := f.tickets.Assign(ctx, admin, tk.ID, tech.ID)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if got.Status != models.StatusInProgress || got.AssignedTo == nil || got.AssignedTo.ID != "t1" {
		t.Fatalf("after assign: status=%q assignee=%+v", got.Status, got.AssignedTo)
	}

	// reassignment while in progress re-sets the snapshot, status stays
	got, err = f.tickets.Assign(ctx, admin, tk.ID, tech2.ID)
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if got.AssignedTo.ID != "t2" || got.Status != models.StatusInProgress {
		t.Fatalf("after reassign: status=%q assignee=%s", got.Status, got.AssignedTo.ID)
	}

	// closed tickets are terminal
	if _, err := f.tickets.Close(ctx, tech2, tk.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := f.tickets.Assign(ctx, admin, tk.ID, tech.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("assign closed: err = %v, want ErrInvalidTransition", err)
	}
}

func TestClose_OnlyAssignedTechnician(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "u1", "jdupont", models.RoleUser)
	admin := f.addUser(t, "a1", "admin", models.RoleAdmin)
	tech := f.addUser(t, "t1", "tech1", models.RoleTechnician)
	other := f.addUser(t, "t2", "tech2", models.RoleTechnician)

	tk := f.createTicket(t, user)

	// not in progress yet
	if _, err := f.tickets.Close(ctx, tech, tk.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("close unassigned: err = %v, want ErrForbidden", err)
	}

	if _, err := f.tickets.Assign(ctx, admin, tk.ID, tech.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	// a different technician must be refused and the status untouched
	if _, err := f.tickets.Close(ctx, other, tk.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("close by other tech: err = %v, want ErrForbidden", err)
	}
	cur, err := f.tickets.Get(ctx, admin, tk.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cur.Status != models.StatusInProgress {
		t.Errorf("status after refused close = %q, want in_progress", cur.Status)
	}

	got, err := f.tickets.Close(ctx, tech, tk.ID)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got.Status != models.StatusClosed {
		t.Errorf("status = %q, want closed", got.Status)
	}
	if got.AssignedTo == nil || got.AssignedTo.ID != "t1" {
		t.Error("close must leave the assignee unchanged")
	}
	// no reopen
	if _, err := f.tickets.Close(ctx, tech, tk.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("double close: err = %v, want ErrInvalidTransition", err)
	}
}

func TestList_RoleScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u1 := f.addUser(t, "u1", "jdupont", models.RoleUser)
	u2 := f.addUser(t, "u2", "mmartin", models.RoleUser)
	admin := f.addUser(t, "a1", "admin", models.RoleAdmin)
	tech := f.addUser(t, "t1", "tech1", models.RoleTechnician)

	t1 := f.createTicket(t, u1)
	t2 := f.createTicket(t, u2)
	f.createTicket(t, u1)

	if _, err := f.tickets.Assign(ctx, admin, t1.ID, tech.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if _, err := f.tickets.Assign(ctx, admin, t2.ID, tech.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if _, err := f.tickets.Close(ctx, tech, t2.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}

	adminList, err := f.tickets.List(ctx, admin, "", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("admin List: %v", err)
	}
	if len(adminList) != 3 {
		t.Errorf("admin sees %d tickets, want 3", len(adminList))
	}

	userList, err := f.tickets.List(ctx, u1, "", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("user List: %v", err)
	}
	if len(userList) != 2 {
		t.Errorf("user sees %d tickets, want 2", len(userList))
	}
	for _, tk := range userList {
		if tk.CreatedBy.ID != "u1" {
			t.Errorf("user list leaked ticket created by %s", tk.CreatedBy.ID)
		}
	}

	// technicians see open assignments only
	techList, err := f.tickets.List(ctx, tech, "", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("tech List: %v", err)
	}
	if len(techList) != 1 || techList[0].ID != t1.ID {
		t.Errorf("tech list = %v, want only %s", techList, t1.ID)
	}

	// search by serial
	bySerial, err := f.tickets.List(ctx, admin, t1.SerialNumber, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("search List: %v", err)
	}
	if len(bySerial) != 1 || bySerial[0].ID != t1.ID {
		t.Errorf("search by serial returned %d rows", len(bySerial))
	}

	// other users cannot read the ticket directly either
	if _, err := f.tickets.Get(ctx, u2, t1.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("cross-user Get: err = %v, want ErrForbidden", err)
	}
}

func TestWorkflow_EndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "u1", "jdupont", models.RoleUser)
	admin := f.addUser(t, "a1", "admin", models.RoleAdmin)
	tech := f.addUser(t, "t1", "tech1", models.RoleTechnician)

	tk := f.createTicket(t, user)
	if tk.Status != models.StatusCreated || tk.AssignedTo != nil {
		t.Fatalf("fresh ticket: status=%q assignee=%v", tk.Status, tk.AssignedTo)
	}

	tk, err := f.tickets.Assign(ctx, admin, tk.ID, tech.ID)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if tk.Status != models.StatusInProgress || tk.AssignedTo.ID != "t1" {
		t.Fatalf("after assign: status=%q assignee=%s", tk.Status, tk.AssignedTo.ID)
	}

	if _, err := f.tickets.Close(ctx, tech, tk.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}

	inv, err := f.invoices.Validate(ctx, admin, tk.ID)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if inv.Amount < 50 || inv.Amount > 150 {
		t.Errorf("amount = %v, want within [50,150]", inv.Amount)
	}
	if inv.TechnicianName != "User tech1" {
		t.Errorf("technicianName = %q, want %q", inv.TechnicianName, "User tech1")
	}
	if inv.TicketSerialNumber != tk.SerialNumber {
		t.Errorf("ticketSerialNumber = %q, want %q", inv.TicketSerialNumber, tk.SerialNumber)
	}

	inv, err = f.invoices.UpdateAmount(ctx, admin, inv.ID, 99.5)
	if err != nil {
		t.Fatalf("UpdateAmount: %v", err)
	}
	if inv.Amount != 99.5 {
		t.Errorf("amount = %v, want 99.5", inv.Amount)
	}
}
