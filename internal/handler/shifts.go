package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/balebbae/RESA-sub002/internal/domain"
	"github.com/balebbae/RESA-sub002/internal/scheduling"
	"github.com/balebbae/RESA-sub002/internal/utils"
)

func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	shifts, err := h.repository.ListShiftsBySchedule(r.Context(), schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "shifts fetched", shifts)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.ScheduledShift)
	h.successResponse(w, r, http.StatusOK, "shift fetched", shift)
}

// CreateShift adds a manual (non-template) shift to the schedule. Role and
// employee display fields are denormalized from the current records.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		RoleID     int64  `json:"roleID" validate:"required"`
		EmployeeID *int64 `json:"employeeID"`
		ShiftDate  string `json:"shiftDate" validate:"required"`
		StartTime  string `json:"startTime" validate:"required"`
		EndTime    string `json:"endTime" validate:"required"`
		Notes      string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateTimeRange(req.StartTime, req.EndTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shiftDate, err := time.Parse(scheduling.DateLayout, req.ShiftDate)
	if err != nil {
		h.badRequest(w, r, fmt.Errorf("%w: shiftDate must be a date in YYYY-MM-DD form", domain.ErrValidation))
		return
	}
	if shiftDate.Before(schedule.StartDate) || shiftDate.After(schedule.EndDate) {
		h.badRequest(w, r, fmt.Errorf("%w: shiftDate must fall within the schedule's week", domain.ErrValidation))
		return
	}

	role, err := h.repository.GetRole(r.Context(), req.RoleID)
	if err != nil || role.RestaurantID != restaurant.ID {
		h.notFound(w, r, "role not found")
		return
	}

	shift := &domain.ScheduledShift{
		ScheduleID: schedule.ID,
		RoleID:     role.ID,
		ShiftDate:  shiftDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Notes:      req.Notes,
		RoleName:   role.Name,
		RoleColor:  role.Color,
	}

	if req.EmployeeID != nil {
		employee, err := h.repository.GetEmployee(r.Context(), *req.EmployeeID)
		if err != nil {
			h.notFound(w, r, "employee not found")
			return
		}
		shift.EmployeeID = &employee.ID
		shift.EmployeeName = &employee.FullName
	}

	if err := h.repository.CreateShift(r.Context(), shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusCreated, "shift created", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)
	shift := r.Context().Value(ShiftCtx).(*domain.ScheduledShift)

	var req struct {
		RoleID    *int64  `json:"roleID"`
		ShiftDate *string `json:"shiftDate"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
		Notes     *string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.RoleID != nil {
		role, err := h.repository.GetRole(r.Context(), *req.RoleID)
		if err != nil || role.RestaurantID != restaurant.ID {
			h.notFound(w, r, "role not found")
			return
		}
		shift.RoleID = role.ID
		shift.RoleName = role.Name
		shift.RoleColor = role.Color
	}
	if req.ShiftDate != nil {
		shiftDate, err := time.Parse(scheduling.DateLayout, *req.ShiftDate)
		if err != nil {
			h.badRequest(w, r, fmt.Errorf("%w: shiftDate must be a date in YYYY-MM-DD form", domain.ErrValidation))
			return
		}
		if shiftDate.Before(schedule.StartDate) || shiftDate.After(schedule.EndDate) {
			h.badRequest(w, r, fmt.Errorf("%w: shiftDate must fall within the schedule's week", domain.ErrValidation))
			return
		}
		shift.ShiftDate = shiftDate
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}
	if req.Notes != nil {
		shift.Notes = *req.Notes
	}

	if err := utils.ValidateTimeRange(shift.StartTime, shift.EndTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateShift(r.Context(), shift); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "shift updated", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.ScheduledShift)

	if err := h.repository.DeleteShift(r.Context(), shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "shift deleted", nil)
}

// AssignShift puts an employee on the shift. Role compatibility is advisory
// and validated by the calling UI, not enforced here; a competing assignment
// is last-write-wins.
func (h *Handler) AssignShift(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)
	shift := r.Context().Value(ShiftCtx).(*domain.ScheduledShift)

	var req struct {
		EmployeeID int64 `json:"employeeID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee, err := h.repository.GetEmployee(r.Context(), req.EmployeeID)
	if err != nil || employee.RestaurantID != restaurant.ID {
		h.notFound(w, r, "employee not found")
		return
	}

	updated, err := h.assigner.Assign(r.Context(), shift.ID, employee.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "shift assigned", updated)
}

// UnassignShift always succeeds on an existing shift, assigned or not.
func (h *Handler) UnassignShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.ScheduledShift)

	updated, err := h.assigner.Unassign(r.Context(), shift.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "shift unassigned", updated)
}
