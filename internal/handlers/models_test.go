package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mukbang-backend/internal/models"
)

func TestListModels(t *testing.T) {
	h := NewImageHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/models", nil)
	rr := httptest.NewRecorder()
	h.ListModels(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["success"] != true {
		t.Errorf("Expected success=true, got %v", body["success"])
	}

	list, ok := body["models"].([]interface{})
	if !ok || len(list) == 0 {
		t.Fatalf("Expected a non-empty model list, got %v", body["models"])
	}
	first, _ := list[0].(map[string]interface{})
	if first["id"] != "imagen-3.0-generate-001" {
		t.Errorf("Expected Imagen model id, got %v", first["id"])
	}
	ratios, _ := first["supportedRatios"].([]interface{})
	if len(ratios) != 5 {
		t.Errorf("Expected 5 supported ratios, got %v", first["supportedRatios"])
	}
}

type fakeAdminHistoryRepo struct {
	gotUserID uuid.UUID
	gotLimit  int
	entries   []*models.PromptHistory
}

func (f *fakeAdminHistoryRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*models.PromptHistory, int, error) {
	f.gotUserID = userID
	f.gotLimit = limit
	return f.entries, len(f.entries), nil
}

func TestAdminListUserHistory(t *testing.T) {
	targetUser := uuid.New()
	history := &fakeAdminHistoryRepo{entries: []*models.PromptHistory{
		{ID: uuid.New(), UserID: targetUser, PromptType: "both", GenerationMode: models.ModeBasic},
	}}
	h := NewAdminHandler(nil, nil, nil, history)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users/"+targetUser.String()+"/history", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", targetUser.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	h.ListUserHistory(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if history.gotUserID != targetUser {
		t.Errorf("Expected lookup scoped to the target user, got %s", history.gotUserID)
	}
	if history.gotLimit != 50 {
		t.Errorf("Expected newest-50 page, got limit %d", history.gotLimit)
	}

	body := decodeBody(t, rr)
	entries, ok := body["history"].([]interface{})
	if !ok || len(entries) != 1 {
		t.Fatalf("Expected one history entry, got %v", body["history"])
	}
	if body["total"] != float64(1) {
		t.Errorf("Expected total 1, got %v", body["total"])
	}
}

func TestAdminListUserHistory_BadID(t *testing.T) {
	h := NewAdminHandler(nil, nil, nil, &fakeAdminHistoryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users/not-a-uuid/history", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	h.ListUserHistory(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}
}
