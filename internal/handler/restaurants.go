package handler

import (
	"net/http"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

func (h *Handler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name" validate:"required"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	restaurant := &domain.Restaurant{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := h.repository.CreateRestaurant(r.Context(), restaurant); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusCreated, "restaurant created", restaurant)
}

func (h *Handler) GetAllRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.repository.GetAllRestaurants(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "restaurants fetched", restaurants)
}

func (h *Handler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)
	h.successResponse(w, r, http.StatusOK, "restaurant fetched", restaurant)
}

func (h *Handler) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)

	var req struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Address != nil {
		restaurant.Address = *req.Address
	}
	if req.Phone != nil {
		restaurant.Phone = *req.Phone
	}

	if err := h.repository.UpdateRestaurant(r.Context(), restaurant); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "restaurant updated", restaurant)
}

func (h *Handler) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant := r.Context().Value(RestaurantCtx).(*domain.Restaurant)

	if err := h.repository.DeleteRestaurant(r.Context(), restaurant.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "restaurant deleted", nil)
}
