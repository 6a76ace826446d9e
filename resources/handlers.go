package resources

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/resourcebox-go/apperror"
	"github.com/user/resourcebox-go/auth"
)

// Handler handles HTTP requests for resources. Every route it registers is
// protected: the auth gate annotates the request and each handler consults
// the guard before doing anything else.
type Handler struct {
	service *Service
}

// NewHandler creates a resource Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the resource API routes with a chi.Router. The
// router group is expected to carry the auth.Annotate middleware.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/resources", h.listResources)
	r.Post("/resource", h.createResource)
	r.Put("/resource/edit/{id}", h.editResource)
	r.Delete("/resource/{id}", h.deleteResource)
}

// listResources godoc
// @Summary List resources
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resources.Resource
// @Failure 401 {object} apperror.ErrorResponse
// @Router /resources [get]
func (h *Handler) listResources(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAuthenticated(w, r) {
		return
	}

	list, err := h.service.List(r.Context())
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, list)
}

// createResource godoc
// @Summary Create a resource
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resource body resources.RawResource true "Resource payload"
// @Success 201 {object} resources.Resource
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Router /resource [post]
func (h *Handler) createResource(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAuthenticated(w, r) {
		return
	}

	var raw RawResource
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		auth.WriteError(w, r, apperror.NewValidationError("Missing resource", err))
		return
	}
	defer r.Body.Close()

	res, err := h.service.Create(r.Context(), raw)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusCreated, res)
}

// editResource godoc
// @Summary Replace a resource's data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource id"
// @Param resource body resources.EditRequest true "Replacement data"
// @Success 201 {object} resources.Resource
// @Success 204 "No resource to edit"
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Router /resource/edit/{id} [put]
func (h *Handler) editResource(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAuthenticated(w, r) {
		return
	}

	id := chi.URLParam(r, "id")

	var req EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewValidationError("Missing data", err))
		return
	}
	defer r.Body.Close()

	res, err := h.service.Update(r.Context(), id, req.Data)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	if res == nil {
		// No resource to edit: a soft outcome, not an error.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	auth.WriteJSON(w, http.StatusCreated, res)
}

// deleteResource godoc
// @Summary Soft-delete a resource
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource id"
// @Success 200 {object} resources.Resource "Soft-deleted resource, or null when nothing matched"
// @Failure 401 {object} apperror.ErrorResponse
// @Router /resource/{id} [delete]
func (h *Handler) deleteResource(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAuthenticated(w, r) {
		return
	}

	id := chi.URLParam(r, "id")

	res, err := h.service.SoftDelete(r.Context(), id)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	// res is nil when the id is unknown or already soft-deleted; the body
	// is then a JSON null, matching the storage collaborator's report.
	auth.WriteJSON(w, http.StatusOK, res)
}
