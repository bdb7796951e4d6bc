package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"eligue-assistance/internal/models"
	"eligue-assistance/internal/repository"
	"eligue-assistance/internal/utils"
)

// UserHTTP is the admin user-management surface. Routes are gated to the
// admin role in the router.
type UserHTTP struct {
	users repository.UserRepository
	apps  repository.ApplicationRepository
}

func NewUserHTTP(users repository.UserRepository, apps repository.ApplicationRepository) *UserHTTP {
	return &UserHTTP{users: users, apps: apps}
}

type userDTO struct {
	Login        string   `json:"login"`
	Password     string   `json:"password"`
	FullName     string   `json:"fullName"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Entity       string   `json:"entity"`
	Position     string   `json:"position"`
	Applications []string `json:"applications"`
	Role         string   `json:"role"`
}

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleTechnician, models.RoleUser:
		return true
	}
	return false
}

func (h *UserHTTP) checkApplications(r *http.Request, apps []string) error {
	for _, a := range apps {
		ok, err := h.apps.Contains(r.Context(), a)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("unknown application %q", a)
		}
	}
	return nil
}

// GET /api/users?q=&role=
func (h *UserHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		users, err := h.users.List(r.Context(), strings.TrimSpace(qv.Get("q")), strings.TrimSpace(qv.Get("role")))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": users, "total": len(users)})
	}
}

// POST /api/users
func (h *UserHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in userDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Login = strings.TrimSpace(in.Login)
		in.FullName = strings.TrimSpace(in.FullName)
		if in.Login == "" || in.FullName == "" || len(in.Password) < 6 {
			utils.Error(w, http.StatusBadRequest, "login, fullName and a password of at least 6 characters are required")
			return
		}
		if !validRole(in.Role) {
			utils.Error(w, http.StatusBadRequest, "invalid role")
			return
		}
		if err := h.checkApplications(r, in.Applications); err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		hash, err := utils.HashPassword(in.Password)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		now := time.Now()
		u := &models.User{
			ID:           uuid.NewString(),
			Login:        in.Login,
			FullName:     in.FullName,
			Email:        strings.TrimSpace(in.Email),
			Phone:        strings.TrimSpace(in.Phone),
			Entity:       strings.TrimSpace(in.Entity),
			Position:     strings.TrimSpace(in.Position),
			Applications: in.Applications,
			Role:         in.Role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := h.users.Create(r.Context(), u, hash); err != nil {
			if err == repository.ErrLoginTaken {
				utils.Error(w, http.StatusConflict, err.Error())
				return
			}
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusCreated, u)
	}
}

// PUT /api/users/{id}
// Edits never rewrite the snapshots embedded in existing tickets or
// invoices.
func (h *UserHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		u, err := h.users.GetByID(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}

		var in userDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Login = strings.TrimSpace(in.Login)
		in.FullName = strings.TrimSpace(in.FullName)
		if in.Login == "" || in.FullName == "" {
			utils.Error(w, http.StatusBadRequest, "login and fullName are required")
			return
		}
		if !validRole(in.Role) {
			utils.Error(w, http.StatusBadRequest, "invalid role")
			return
		}
		if err := h.checkApplications(r, in.Applications); err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		var hash string
		if in.Password != "" {
			if len(in.Password) < 6 {
				utils.Error(w, http.StatusBadRequest, "password must be at least 6 characters")
				return
			}
			hash, err = utils.HashPassword(in.Password)
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, err.Error())
				return
			}
		}

		u.Login = in.Login
		u.FullName = in.FullName
		u.Email = strings.TrimSpace(in.Email)
		u.Phone = strings.TrimSpace(in.Phone)
		u.Entity = strings.TrimSpace(in.Entity)
		u.Position = strings.TrimSpace(in.Position)
		u.Applications = in.Applications
		u.Role = in.Role
		u.UpdatedAt = time.Now()

		if err := h.users.Update(r.Context(), u, hash); err != nil {
			if err == repository.ErrLoginTaken {
				utils.Error(w, http.StatusConflict, err.Error())
				return
			}
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// DELETE /api/users/{id} — hard delete, no cascade to tickets.
func (h *UserHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		u, err := h.users.GetByID(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}
		if err := h.users.Delete(r.Context(), id); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
