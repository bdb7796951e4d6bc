package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"eligue-assistance/internal/service"
	"eligue-assistance/internal/utils"
)

// TicketHTTP wires the ticket workflow to HTTP.
type TicketHTTP struct {
	tickets  *service.TicketService
	invoices *service.InvoiceService
}

func NewTicketHTTP(tickets *service.TicketService, invoices *service.InvoiceService) *TicketHTTP {
	return &TicketHTTP{tickets: tickets, invoices: invoices}
}

// GET /api/tickets?q=&from=&to=
// The result is already scoped by role inside the service.
func (h *TicketHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		q := strings.TrimSpace(qv.Get("q"))
		from := utils.QueryDate(qv, "from")
		to := utils.EndOfDay(utils.QueryDate(qv, "to"))

		items, err := h.tickets.List(r.Context(), actorFrom(r), q, from, to)
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	}
}

// GET /api/tickets/{id}
func (h *TicketHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := h.tickets.Get(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// POST /api/tickets
func (h *TicketHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Title       string   `json:"title"`
		Application string   `json:"application"`
		Location    string   `json:"location"`
		Description string   `json:"description"`
		Attachments []string `json:"attachments"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		t, err := h.tickets.Create(r.Context(), actorFrom(r), service.CreateTicketInput{
			Title:       in.Title,
			Application: in.Application,
			Location:    in.Location,
			Description: in.Description,
			Attachments: in.Attachments,
		})
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, t)
	}
}

// POST /api/tickets/{id}/assign
func (h *TicketHTTP) Assign() http.HandlerFunc {
	type inDTO struct {
		TechnicianID string `json:"technicianId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		t, err := h.tickets.Assign(r.Context(), actorFrom(r), chi.URLParam(r, "id"), strings.TrimSpace(in.TechnicianID))
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// POST /api/tickets/{id}/close
func (h *TicketHTTP) Close() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := h.tickets.Close(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// POST /api/tickets/{id}/validate
// Generates the intervention invoice for a closed ticket.
func (h *TicketHTTP) Validate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, err := h.invoices.Validate(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, inv)
	}
}
