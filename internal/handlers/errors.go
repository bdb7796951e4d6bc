package handlers

import (
	"errors"
	"net/http"

	"eligue-assistance/internal/middleware"
	"eligue-assistance/internal/service"
	"eligue-assistance/internal/utils"
)

// serviceError maps engine sentinels to HTTP statuses. Anything
// unrecognized is a 500.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrInvalidInput):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrForbidden):
		utils.Error(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrDuplicateInvoice):
		utils.Error(w, http.StatusConflict, "ticket already validated")
	case errors.Is(err, service.ErrInvalidTransition):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidAmount):
		utils.Error(w, http.StatusUnprocessableEntity, "amount must be a non-negative number")
	case errors.Is(err, service.ErrUnknownTechnician):
		utils.Error(w, http.StatusNotFound, "assignee not found among technicians")
	case errors.Is(err, service.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "not found")
	default:
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
}

func actorFrom(r *http.Request) service.Actor {
	uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
	role, _ := utils.GetString(r.Context(), middleware.CtxRole)
	return service.Actor{ID: uid, Role: role}
}
