package handler

import "net/http"

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, http.StatusOK, "ok", nil)
}
