package models

import "time"

const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
	RoleUser       = "user"
)

type User struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Entity       string    `json:"entity"`
	Position     string    `json:"position"`
	Applications []string  `json:"applications"`
	Role         string    `json:"role"` // admin | technician | user
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserSnapshot is a copy-by-value embedding of a user at a point in time.
// Tickets and invoices keep snapshots, not references: editing or deleting
// a user never rewrites history.
type UserSnapshot struct {
	ID       string `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Entity   string `json:"entity"`
	Position string `json:"position"`
}

func (u User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:       u.ID,
		Login:    u.Login,
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Entity:   u.Entity,
		Position: u.Position,
	}
}
