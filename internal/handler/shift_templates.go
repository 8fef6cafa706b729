package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/balebbae/RESA-sub002/internal/domain"
	"github.com/balebbae/RESA-sub002/internal/utils"
)

func (h *Handler) CreateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)

	var req struct {
		Name      string  `json:"name"`
		DayOfWeek *int32  `json:"dayOfWeek" validate:"required"`
		StartTime string  `json:"startTime" validate:"required"`
		EndTime   string  `json:"endTime" validate:"required"`
		RoleIDs   []int64 `json:"roleIDs" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	template := &domain.ShiftTemplate{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		DayOfWeek:    *req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		RoleIDs:      req.RoleIDs,
	}
	if err := utils.ValidateShiftTemplate(template); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateShiftTemplate(r.Context(), template); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "shift_template_roles_role_id_fkey" {
			h.errorResponse(w, r, http.StatusBadRequest, "one of the roles does not exist")
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusCreated, "shift template created", template)
}

func (h *Handler) ListShiftTemplates(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)

	templates, err := h.repository.ListShiftTemplates(r.Context(), restaurant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "shift templates fetched", templates)
}

func (h *Handler) GetShiftTemplate(w http.ResponseWriter, r *http.Request) {
	template := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)
	h.successResponse(w, r, http.StatusOK, "shift template fetched", template)
}

func (h *Handler) UpdateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	template := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	var req struct {
		Name      *string `json:"name"`
		DayOfWeek *int32  `json:"dayOfWeek"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
		RoleIDs   []int64 `json:"roleIDs" validate:"omitempty,min=1"`
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
		template.Name = *req.Name
	}
	if req.DayOfWeek != nil {
		template.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		template.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		template.EndTime = *req.EndTime
	}
	if req.RoleIDs != nil {
		template.RoleIDs = req.RoleIDs
	}

	if err := utils.ValidateShiftTemplate(template); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateShiftTemplate(r.Context(), template); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "shift template updated", template)
}

// DeleteShiftTemplate removes the template only. Shifts already materialized
// from it stay in their schedules with the template reference cleared.
func (h *Handler) DeleteShiftTemplate(w http.ResponseWriter, r *http.Request) {
	template := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	if err := h.repository.DeleteShiftTemplate(r.Context(), template.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "shift template deleted", nil)
}
