package handlers

import (
	"encoding/json"
	"net/http"

	"mukbang-backend/internal/services"
)

type ActionHandler struct {
	actions *services.ActionService
}

func NewActionHandler(actions *services.ActionService) *ActionHandler {
	return &ActionHandler{actions: actions}
}

// Expand handles POST /api/expand-action.
func (h *ActionHandler) Expand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Actions      []string `json:"actions"`
		CustomAction string   `json:"customAction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}

	expanded, err := h.actions.ExpandAction(r.Context(), req.Actions, req.CustomAction)
	if err != nil {
		if _, ok := err.(*services.ValidationError); ok {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("动作扩写失败，请稍后重试"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"expandedAction": expanded,
	})
}

// Improve handles POST /api/improve-action.
func (h *ActionHandler) Improve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OriginalAction string `json:"originalAction"`
		Improvement    string `json:"improvement"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("请求格式错误"))
		return
	}

	improved, err := h.actions.ImproveAction(r.Context(), req.OriginalAction, req.Improvement)
	if err != nil {
		if _, ok := err.(*services.ValidationError); ok {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("动作改进失败，请稍后重试"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"improvedAction": improved,
	})
}
