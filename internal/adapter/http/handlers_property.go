package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rentora/rentora/internal/domain/property"
	"github.com/rentora/rentora/internal/domain/user"
	"github.com/rentora/rentora/internal/middleware"
)

// CreateProperty handles POST /api/v1/properties
func (h *Handlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	req, ok := readJSON[property.CreateRequest](w, r, maxRequestBodySize)
	if !ok {
		return
	}

	p, err := h.Properties.Create(r.Context(), claims.UserID, &req)
	if err != nil {
		writeMutationError(w, err, "property creation failed")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// SearchProperties handles GET /api/v1/properties
//
// Query parameters: minPrice, maxPrice, bedrooms, bathrooms, available,
// lat, lng, radius. When the caller is a tenant the availability filter
// is forced to true.
func (h *Handlers) SearchProperties(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	filters, err := parseSearchFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if claims.Role == user.RoleTenant {
		available := true
		filters.Available = &available
	}

	props, err := h.Properties.Search(r.Context(), filters)
	if err != nil {
		writeMutationError(w, err, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, props)
}

// ListLandlordProperties handles GET /api/v1/properties/landlord
func (h *Handlers) ListLandlordProperties(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	props, err := h.Properties.ListByLandlord(r.Context(), claims.UserID)
	if err != nil {
		writeMutationError(w, err, "listing failed")
		return
	}
	writeJSON(w, http.StatusOK, props)
}

// ListShortlistedProperties handles GET /api/v1/properties/shortlisted
func (h *Handlers) ListShortlistedProperties(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	props, err := h.Properties.ListShortlisted(r.Context(), claims.UserID)
	if err != nil {
		writeMutationError(w, err, "listing failed")
		return
	}
	writeJSON(w, http.StatusOK, props)
}

// GetProperty handles GET /api/v1/properties/{id} (public)
func (h *Handlers) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.Properties.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProperty handles PUT /api/v1/properties/{id}
func (h *Handlers) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	id := chi.URLParam(r, "id")

	patch, ok := readJSON[property.UpdateRequest](w, r, maxRequestBodySize)
	if !ok {
		return
	}

	p, err := h.Properties.Update(r.Context(), id, claims.UserID, &patch)
	if err != nil {
		writeMutationError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProperty handles DELETE /api/v1/properties/{id}
func (h *Handlers) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.Properties.Delete(r.Context(), id, claims.UserID); err != nil {
		writeMutationError(w, err, "property not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddShortlist handles POST /api/v1/properties/{id}/shortlist
func (h *Handlers) AddShortlist(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.Properties.AddToShortlist(r.Context(), id, claims.UserID); err != nil {
		writeMutationError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "shortlisted"})
}

// RemoveShortlist handles DELETE /api/v1/properties/{id}/shortlist
func (h *Handlers) RemoveShortlist(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.Properties.RemoveFromShortlist(r.Context(), id, claims.UserID); err != nil {
		writeMutationError(w, err, "property not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckShortlist handles GET /api/v1/properties/{id}/shortlist
func (h *Handlers) CheckShortlist(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	id := chi.URLParam(r, "id")

	shortlisted, err := h.Properties.IsShortlisted(r.Context(), id, claims.UserID)
	if err != nil {
		writeMutationError(w, err, "property not found")
		return
	}
	if !shortlisted {
		writeError(w, http.StatusNotFound, "not shortlisted")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"shortlisted": true})
}

// parseSearchFilters builds SearchFilters from query parameters.
// A geo filter requires both lat and lng; radius defaults server-side.
func parseSearchFilters(r *http.Request) (property.SearchFilters, error) {
	var f property.SearchFilters
	q := r.URL.Query()

	var err error
	if f.MinPrice, err = queryFloat(q.Get("minPrice"), "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryFloat(q.Get("maxPrice"), "maxPrice"); err != nil {
		return f, err
	}
	if f.Bedrooms, err = queryInt(q.Get("bedrooms"), "bedrooms"); err != nil {
		return f, err
	}
	if f.Bathrooms, err = queryInt(q.Get("bathrooms"), "bathrooms"); err != nil {
		return f, err
	}
	if v := q.Get("available"); v != "" {
		available, err := strconv.ParseBool(v)
		if err != nil {
			return f, &queryParamError{"available"}
		}
		f.Available = &available
	}

	lat, err := queryFloat(q.Get("lat"), "lat")
	if err != nil {
		return f, err
	}
	lng, err := queryFloat(q.Get("lng"), "lng")
	if err != nil {
		return f, err
	}
	if lat != nil && lng != nil {
		f.Center = &property.Point{Longitude: *lng, Latitude: *lat}
		radius, err := queryFloat(q.Get("radius"), "radius")
		if err != nil {
			return f, err
		}
		if radius != nil {
			f.RadiusMeters = *radius
		}
	}

	return f, nil
}

type queryParamError struct {
	name string
}

func (e *queryParamError) Error() string {
	return "invalid " + e.name + " parameter"
}

func queryFloat(v, name string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, &queryParamError{name}
	}
	return &f, nil
}

func queryInt(v, name string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, &queryParamError{name}
	}
	return &n, nil
}
