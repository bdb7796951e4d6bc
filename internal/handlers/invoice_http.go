package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"eligue-assistance/internal/service"
	"eligue-assistance/internal/utils"
)

type InvoiceHTTP struct {
	svc *service.InvoiceService
}

func NewInvoiceHTTP(s *service.InvoiceService) *InvoiceHTTP { return &InvoiceHTTP{svc: s} }

// GET /api/invoices?q=&from=&to=
func (h *InvoiceHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		q := strings.TrimSpace(qv.Get("q"))
		from := utils.QueryDate(qv, "from")
		to := utils.EndOfDay(utils.QueryDate(qv, "to"))

		items, err := h.svc.List(r.Context(), actorFrom(r), q, from, to)
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	}
}

// PATCH /api/invoices/{id}/amount
func (h *InvoiceHTTP) UpdateAmount() http.HandlerFunc {
	type inDTO struct {
		Amount float64 `json:"amount"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		inv, err := h.svc.UpdateAmount(r.Context(), actorFrom(r), chi.URLParam(r, "id"), in.Amount)
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, inv)
	}
}

// GET /api/invoices/{id}/document
// Hands the print renderer its (invoice, ticket) pair.
func (h *InvoiceHTTP) Document() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, t, err := h.svc.Document(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"invoice": inv, "ticket": t})
	}
}
