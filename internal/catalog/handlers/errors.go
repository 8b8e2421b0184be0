package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	e "github.com/gartstein/catalog/internal/catalog/errors"
	"github.com/gartstein/catalog/internal/catalog/models"
	"go.uber.org/zap"
)

const (
	codeNotFound           = "not_found"
	codeMethodNotAllowed   = "method_not_allowed"
	codeBadRequest         = "bad_request"
	codeForbidden          = "forbidden"
	codeStorageUnavailable = "storage_unavailable"
	codeInvalidSnapshot    = "invalid_snapshot"
	codeUnhealthy          = "unhealthy"
	codeInternalError      = "internal_error"
)

var notFoundMessages = map[models.Collection]string{
	models.Companies: "Company not found",
	models.Moments:   "Moment not found",
	models.Drops:     "Drop not found",
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// mapServiceError writes the response for an error returned by the service
// while answering a query over collection.
func (h *CatalogHandler) mapServiceError(w http.ResponseWriter, collection models.Collection, err error) {
	switch {
	case errors.Is(err, e.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, notFoundMessages[collection])
	case errors.Is(err, e.ErrInvalidInput):
		h.logger.Error("Invalid snapshot", zap.String("collection", string(collection)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInvalidSnapshot,
			fmt.Sprintf("Invalid JSON format in %s", collection.FileName()))
	case errors.Is(err, e.ErrUnavailable):
		h.logger.Error("Snapshot read error", zap.String("collection", string(collection)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeStorageUnavailable,
			fmt.Sprintf("Failed to read %s", collection.FileName()))
	default:
		h.logger.Error("Internal server error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal server error")
	}
}
