package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/npoconnect/internal/app/features/health"
	"github.com/dalemusser/npoconnect/internal/app/store/kv"
	"go.uber.org/zap"
)

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

type response struct {
	Status        string `json:"status"`
	Store         string `json:"store"`
	Organizations int    `json:"organizations"`
	Generation    string `json:"generation"`
	Error         string `json:"error"`
}

func serve(t *testing.T, h *health.Handler) (*httptest.ResponseRecorder, response) {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	health.Routes(h).ServeHTTP(rec, req)

	var resp response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return rec, resp
}

func TestServe_StoreConnected(t *testing.T) {
	rec, resp := serve(t, health.NewHandler(kv.NewMemory(), 11, true, zap.NewNop()))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}
	if resp.Status != "ok" || resp.Store != "connected" {
		t.Errorf("status/store: got %q/%q, want ok/connected", resp.Status, resp.Store)
	}
	if resp.Organizations != 11 {
		t.Errorf("organizations: got %d, want 11", resp.Organizations)
	}
	if resp.Generation != "configured" {
		t.Errorf("generation: got %q, want configured", resp.Generation)
	}
}

func TestServe_GenerationDisabledIsStillHealthy(t *testing.T) {
	rec, resp := serve(t, health.NewHandler(kv.NewMemory(), 3, false, zap.NewNop()))
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if resp.Generation != "disabled" {
		t.Errorf("generation: got %q, want disabled", resp.Generation)
	}
}

func TestServe_StoreDown(t *testing.T) {
	rec, resp := serve(t, health.NewHandler(downStore{}, 3, true, zap.NewNop()))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	if resp.Status != "error" || resp.Store != "disconnected" {
		t.Errorf("status/store: got %q/%q", resp.Status, resp.Store)
	}
	if resp.Error == "" {
		t.Error("expected error detail")
	}
}
