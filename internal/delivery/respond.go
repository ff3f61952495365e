package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/docreader/internal/domain"
	"github.com/Vovarama1992/go-utils/logger"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeServer       = "SERVER_ERROR"
	CodeEmailExists  = "EMAIL_EXISTS"
	CodePending      = "PENDING_ACTIVATION"
)

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func fail(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg, Code: code})
}

// failErr maps domain errors onto status codes. Anything unknown is logged
// and reported as a server error without leaking its text.
func failErr(w http.ResponseWriter, log *logger.ZapLogger, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		fail(w, http.StatusNotFound, CodeNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		fail(w, http.StatusForbidden, CodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidInput):
		fail(w, http.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrSessionExpired):
		fail(w, http.StatusUnauthorized, CodeUnauthorized, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		fail(w, http.StatusBadRequest, CodeEmailExists, err.Error())
	case errors.Is(err, domain.ErrPendingActivation):
		fail(w, http.StatusForbidden, CodePending, err.Error())
	case errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrWeakPassword):
		fail(w, http.StatusBadRequest, CodeValidation, err.Error())
	default:
		log.Log(logger.LogEntry{
			Level:   "error",
			Message: op + " failed",
			Error:   err,
		})
		fail(w, http.StatusInternalServerError, CodeServer, "internal error")
	}
}
