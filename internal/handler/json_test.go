package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/balebbae/RESA-sub002/internal/domain"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	return resp
}

func TestDomainErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, ""},
		{"wrapped not found", fmt.Errorf("loading shift: %w", domain.ErrNotFound), http.StatusNotFound, ""},
		{"validation", fmt.Errorf("%w: bad week start", domain.ErrValidation), http.StatusBadRequest, ""},
		{"already published", domain.ErrAlreadyPublished, http.StatusBadRequest, "already_published"},
		{"role in use", domain.ErrRoleInUse, http.StatusConflict, "role_in_use"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, ""},
	}

	h := &Handler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			h.domainError(rec, req, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			resp := decodeResponse(t, rec)
			if resp.Success {
				t.Error("error response marked success")
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestInternalServerErrorHidesDetails(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	h.internalServerError(rec, req, errors.New("pq: password authentication failed"))

	resp := decodeResponse(t, rec)
	if resp.Message != "internal server error" {
		t.Errorf("message = %q, internals must not leak to clients", resp.Message)
	}
}

func TestSuccessResponseEnvelope(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	h.successResponse(rec, req, http.StatusCreated, "role created", map[string]int{"id": 7})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success || resp.Message != "role created" {
		t.Errorf("envelope = %+v", resp)
	}
}
