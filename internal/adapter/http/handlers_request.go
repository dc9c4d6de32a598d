package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentora/rentora/internal/domain/request"
	"github.com/rentora/rentora/internal/middleware"
)

// CreateRequest handles POST /api/v1/requests
func (h *Handlers) CreateRequest(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	req, ok := readJSON[request.CreateRequest](w, r, maxRequestBodySize)
	if !ok {
		return
	}

	created, err := h.Requests.Create(r.Context(), claims.UserID, &req)
	if err != nil {
		writeMutationError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTenantRequests handles GET /api/v1/requests/tenant
func (h *Handlers) ListTenantRequests(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	reqs, err := h.Requests.ListForTenant(r.Context(), claims.UserID)
	if err != nil {
		writeMutationError(w, err, "listing failed")
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

// ListLandlordRequests handles GET /api/v1/requests/landlord
func (h *Handlers) ListLandlordRequests(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	reqs, err := h.Requests.ListForLandlord(r.Context(), claims.UserID)
	if err != nil {
		writeMutationError(w, err, "listing failed")
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

// UpdateRequestStatus handles PUT /api/v1/requests/{id}/status
func (h *Handlers) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	id := chi.URLParam(r, "id")

	body, ok := readJSON[request.UpdateStatusRequest](w, r, maxRequestBodySize)
	if !ok {
		return
	}

	updated, err := h.Requests.TransitionStatus(r.Context(), id, claims.UserID, body.Status)
	if err != nil {
		writeMutationError(w, err, "request not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// GetRequest handles GET /api/v1/requests/{id} (public)
func (h *Handlers) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, err := h.Requests.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "request not found")
		return
	}
	writeJSON(w, http.StatusOK, req)
}
