package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "requestID", rw.Header().Get("X-Request-ID"), "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				fmt.Print(string(debug.Stack()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// rateLimit is a fixed-window per-IP limiter backed by redis. It sits at the
// API boundary, outside the scheduling core.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	if !h.config.RateLimit.Enabled || h.redisClient == nil {
		return next
	}

	window := time.Duration(h.config.RateLimit.WindowSeconds) * time.Second
	limit := int64(h.config.RateLimit.RequestsPerWindow)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		key := fmt.Sprintf("ratelimit:%s:%d", ip, time.Now().Unix()/int64(window.Seconds()))

		count, err := h.redisClient.Incr(r.Context(), key).Result()
		if err != nil {
			// fail open: an unreachable limiter should not take the API down
			slog.Warn("rate limiter unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			h.redisClient.Expire(r.Context(), key, window)
		}
		if count > limit {
			h.errorResponse(w, r, http.StatusTooManyRequests, "too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) urlParamID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func (h *Handler) restaurantCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := h.urlParamID(r, "restaurantID")
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "invalid restaurant ID")
			return
		}

		restaurant, err := h.repository.GetRestaurant(r.Context(), restaurantID)
		if err != nil {
			h.domainError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), RestaurantCtx, restaurant)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) employeeCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		employeeID, err := h.urlParamID(r, "employeeID")
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "invalid employee ID")
			return
		}

		employee, err := h.repository.GetEmployee(r.Context(), employeeID)
		if err != nil {
			h.domainError(w, r, err)
			return
		}

		restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)
		if employee.RestaurantID != restaurant.ID {
			h.notFound(w, r, "employee not found")
			return
		}

		ctx := context.WithValue(r.Context(), EmployeeCtx, employee)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) roleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roleID, err := h.urlParamID(r, "roleID")
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "invalid role ID")
			return
		}

		role, err := h.repository.GetRole(r.Context(), roleID)
		if err != nil {
			h.domainError(w, r, err)
			return
		}

		restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)
		if role.RestaurantID != restaurant.ID {
			h.notFound(w, r, "role not found")
			return
		}

		ctx := context.WithValue(r.Context(), RoleCtx, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) shiftTemplateCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		templateID, err := h.urlParamID(r, "templateID")
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "invalid template ID")
			return
		}

		template, err := h.repository.GetShiftTemplate(r.Context(), templateID)
		if err != nil {
			h.domainError(w, r, err)
			return
		}

		restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)
		if template.RestaurantID != restaurant.ID {
			h.notFound(w, r, "shift template not found")
			return
		}

		ctx := context.WithValue(r.Context(), ShiftTemplateCtx, template)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) scheduleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheduleID, err := h.urlParamID(r, "scheduleID")
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "invalid schedule ID")
			return
		}

		schedule, err := h.repository.GetSchedule(r.Context(), scheduleID)
		if err != nil {
			h.domainError(w, r, err)
			return
		}

		restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)
		if schedule.RestaurantID != restaurant.ID {
			h.notFound(w, r, "schedule not found")
			return
		}

		ctx := context.WithValue(r.Context(), ScheduleCtx, schedule)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) shiftCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shiftID, err := h.urlParamID(r, "shiftID")
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "invalid shift ID")
			return
		}

		shift, err := h.repository.GetShift(r.Context(), shiftID)
		if err != nil {
			h.domainError(w, r, err)
			return
		}

		schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)
		if shift.ScheduleID != schedule.ID {
			h.notFound(w, r, "shift not found")
			return
		}

		ctx := context.WithValue(r.Context(), ShiftCtx, shift)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
