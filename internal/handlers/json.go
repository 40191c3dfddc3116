package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"mukbang-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) map[string]interface{} {
	return map[string]interface{}{"error": message}
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, errorResp(e.Message))
	case *services.ConflictError:
		writeJSON(w, http.StatusConflict, errorResp(e.Message))
	case *services.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResp(e.Message))
	case *services.UnauthorizedError:
		writeJSON(w, http.StatusUnauthorized, errorResp(e.Message))
	case *services.ForbiddenError:
		writeJSON(w, http.StatusForbidden, errorResp(e.Message))
	case *services.QuotaExceededError:
		writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"error":   "今日生成次数已用完",
			"message": e.Message,
			"usage":   e.Usage,
		})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("服务器内部错误，请稍后重试"))
	}
}
