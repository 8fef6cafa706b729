package handler

import (
	"net/http"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)

	var req struct {
		FullName string `json:"fullName" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Phone    string `json:"phone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := &domain.Employee{
		RestaurantID: restaurant.ID,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
	}
	if err := h.repository.CreateEmployee(r.Context(), employee); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusCreated, "employee created", employee)
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)

	employees, err := h.repository.ListEmployees(r.Context(), restaurant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "employees fetched", employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)
	h.successResponse(w, r, http.StatusOK, "employee fetched", employee)
}

// UpdateEmployee persists the change and lets the repository propagate a
// renamed employee onto their assigned shifts in the same transaction.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	var req struct {
		FullName *string `json:"fullName"`
		Email    *string `json:"email" validate:"omitempty,email"`
		Phone    *string `json:"phone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.FullName != nil {
		employee.FullName = *req.FullName
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}

	if err := h.repository.UpdateEmployee(r.Context(), employee); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "employee updated", employee)
}

// DeleteEmployee removes the employee; their shifts become unassigned rather
// than deleted.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if err := h.repository.DeleteEmployee(r.Context(), employee.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "employee deleted", nil)
}
