package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/balebbae/RESA-sub002/internal/domain"
	"github.com/balebbae/RESA-sub002/internal/scheduling"
)

type materializeResponse struct {
	Schedule     *domain.Schedule `json:"schedule"`
	CreatedCount int              `json:"createdCount"`
}

// MaterializeWeek is the week-view entry point: it gets or creates the
// schedule for the requested week and fills in any missing shift instances
// from the restaurant's templates. Safe to call on every load.
func (h *Handler) MaterializeWeek(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)

	var req struct {
		WeekStart string `json:"weekStart" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	weekStart, err := time.Parse(scheduling.DateLayout, req.WeekStart)
	if err != nil {
		h.badRequest(w, r, fmt.Errorf("%w: weekStart must be a date in YYYY-MM-DD form", domain.ErrValidation))
		return
	}

	schedule, created, err := h.materializer.MaterializeWeek(r.Context(), restaurant.ID, weekStart)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "week materialized", materializeResponse{
		Schedule:     schedule,
		CreatedCount: created,
	})
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)

	schedules, err := h.repository.ListSchedules(r.Context(), restaurant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "schedules fetched", schedules)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)
	h.successResponse(w, r, http.StatusOK, "schedule fetched", schedule)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if err := h.repository.DeleteSchedule(r.Context(), schedule.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "schedule deleted", nil)
}

// AutoPopulateSchedule re-runs template expansion for an existing schedule's
// week, picking up templates added since the week was first materialized.
func (h *Handler) AutoPopulateSchedule(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	_, created, err := h.materializer.MaterializeWeek(r.Context(), restaurant.ID, schedule.StartDate)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "schedule populated", materializeResponse{
		Schedule:     schedule,
		CreatedCount: created,
	})
}

// PublishSchedule fires the one-way draft→published transition. A second
// publish returns 400 with code already_published and leaves the original
// timestamp untouched. Notification dispatch failures show up as warnings in
// the response, never as a failed publish.
func (h *Handler) PublishSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	result, err := h.lifecycle.Publish(r.Context(), schedule.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "schedule published", result)
}
