package handler

import (
	"net/http"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)

	var req struct {
		Name  string `json:"name" validate:"required"`
		Color string `json:"color" validate:"required,hexcolor"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	role := &domain.Role{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Color:        req.Color,
	}
	if err := h.repository.CreateRole(r.Context(), role); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusCreated, "role created", role)
}

func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)

	roles, err := h.repository.ListRoles(r.Context(), restaurant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "roles fetched", roles)
}

func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	role := r.Context().Value(RoleCtx).(*domain.Role)
	h.successResponse(w, r, http.StatusOK, "role fetched", role)
}

// UpdateRole persists the change; the repository propagates name and color
// onto every shift carrying the role in the same transaction.
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	role := r.Context().Value(RoleCtx).(*domain.Role)

	var req struct {
		Name  *string `json:"name"`
		Color *string `json:"color" validate:"omitempty,hexcolor"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.Color != nil {
		role.Color = *req.Color
	}

	if err := h.repository.UpdateRole(r.Context(), role); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "role updated", role)
}

// DeleteRole is refused while any scheduled shift references the role.
func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	role := r.Context().Value(RoleCtx).(*domain.Role)

	if err := h.repository.DeleteRole(r.Context(), role.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "role deleted", nil)
}
