package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"eligue-assistance/internal/repository"
	"eligue-assistance/internal/utils"
)

// ApplicationHTTP serves the catalog of application names tickets and
// user profiles draw from.
type ApplicationHTTP struct {
	apps repository.ApplicationRepository
}

func NewApplicationHTTP(apps repository.ApplicationRepository) *ApplicationHTTP {
	return &ApplicationHTTP{apps: apps}
}

// GET /api/applications
func (h *ApplicationHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := h.apps.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": names})
	}
}

// POST /api/applications — append-only; adding an existing name is a
// no-op.
func (h *ApplicationHTTP) Add() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Name = strings.TrimSpace(in.Name)
		if in.Name == "" {
			utils.Error(w, http.StatusBadRequest, "name is required")
			return
		}
		if err := h.apps.Add(r.Context(), in.Name); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		names, err := h.apps.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{"items": names})
	}
}
