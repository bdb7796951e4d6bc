package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"eligue-assistance/internal/models"
	"eligue-assistance/internal/repository"
)

func TestApplicationCatalog(t *testing.T) {
	store := New([]string{"Zeta", "Alpha", "Alpha", ""})
	apps := NewApplicationRepo(store)
	ctx := context.Background()

	names, err := apps.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"Alpha", "Zeta"}) {
		t.Fatalf("initial catalog = %v", names)
	}

	// case-sensitive dedup, kept sorted
	if err := apps.Add(ctx, "alpha"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := apps.Add(ctx, "Alpha"); err != nil {
		t.Fatalf("Add dup: %v", err)
	}
	names, _ = apps.List(ctx)
	if !reflect.DeepEqual(names, []string{"Alpha", "Zeta", "alpha"}) {
		t.Fatalf("catalog = %v", names)
	}

	ok, err := apps.Contains(ctx, "Zeta")
	if err != nil || !ok {
		t.Errorf("Contains(Zeta) = %v, %v", ok, err)
	}
	ok, _ = apps.Contains(ctx, "zeta")
	if ok {
		t.Error("Contains must be case-sensitive")
	}
}

func TestTicketSnapshots_DecoupledFromUsers(t *testing.T) {
	store := New(nil)
	users := NewUserRepo(store)
	tickets := NewTicketRepo(store)
	ctx := context.Background()

	u := &models.User{ID: "u1", Login: "jdupont", FullName: "Jean Dupont", Role: models.RoleUser}
	if err := users.Create(ctx, u, "x"); err != nil {
		t.Fatalf("Create user: %v", err)
	}

	tk := &models.Ticket{
		ID:        "tk1",
		Title:     "ecran noir",
		Status:    models.StatusCreated,
		CreatedAt: time.Now(),
		CreatedBy: u.Snapshot(),
	}
	if err := tickets.Create(ctx, tk); err != nil {
		t.Fatalf("Create ticket: %v", err)
	}

	// renaming the user must not rewrite history
	u.FullName = "Jean Renomme"
	if err := users.Update(ctx, u, ""); err != nil {
		t.Fatalf("Update user: %v", err)
	}
	got, err := tickets.Get(ctx, "tk1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CreatedBy.FullName != "Jean Dupont" {
		t.Errorf("snapshot fullName = %q, want the name at creation time", got.CreatedBy.FullName)
	}

	// neither must deleting the user
	if err := users.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = tickets.Get(ctx, "tk1")
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if got == nil || got.CreatedBy.ID != "u1" {
		t.Error("ticket lost its creator snapshot after user deletion")
	}
}

func TestTicketCreate_AssignsSerials(t *testing.T) {
	store := New(nil)
	tickets := NewTicketRepo(store)
	ctx := context.Background()

	want := []string{"TI-0001", "TI-0002", "TI-0003"}
	for i, w := range want {
		tk := &models.Ticket{ID: string(rune('a' + i)), Status: models.StatusCreated, CreatedAt: time.Now()}
		if err := tickets.Create(ctx, tk); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if tk.SerialNumber != w {
			t.Errorf("serial = %q, want %q", tk.SerialNumber, w)
		}
	}
}

func TestUserRepo_LoginUniqueness(t *testing.T) {
	store := New(nil)
	users := NewUserRepo(store)
	ctx := context.Background()

	a := &models.User{ID: "u1", Login: "jdupont", Role: models.RoleUser}
	b := &models.User{ID: "u2", Login: "jdupont", Role: models.RoleUser}
	if err := users.Create(ctx, a, "x"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := users.Create(ctx, b, "x"); !errors.Is(err, repository.ErrLoginTaken) {
		t.Errorf("duplicate login: err = %v, want ErrLoginTaken", err)
	}

	// update colliding with another user's login is refused too
	c := &models.User{ID: "u3", Login: "mmartin", Role: models.RoleUser}
	if err := users.Create(ctx, c, "x"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	c.Login = "jdupont"
	if err := users.Update(ctx, c, ""); !errors.Is(err, repository.ErrLoginTaken) {
		t.Errorf("update to taken login: err = %v, want ErrLoginTaken", err)
	}
}

func TestTicketList_DateRange(t *testing.T) {
	store := New(nil)
	tickets := NewTicketRepo(store)
	ctx := context.Background()

	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		tk := &models.Ticket{
			ID:        string(rune('a' + i)),
			Title:     "t",
			Status:    models.StatusCreated,
			CreatedAt: base.AddDate(0, 0, i),
		}
		if err := tickets.Create(ctx, tk); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := tickets.List(ctx, repository.TicketFilter{
		From: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 3, 11, 23, 59, 59, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("range list = %v, want just the middle ticket", got)
	}
}
