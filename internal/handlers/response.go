package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	msgBackendDown = "Servidor indisponível. Tente novamente em instantes."
	msgInvalidTab  = "Comanda inválida"
)

// jsonError is the body of the few non-HTML endpoints when they fail.
type jsonError struct {
	Status int    `json:"status"`
	Erro   string `json:"erro"`
}

func writeJSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "status", status, "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, jsonError{Status: status, Erro: message}, logger)
}
