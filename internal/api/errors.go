package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sejf-plikow/internal/account"
	"sejf-plikow/internal/auth"
	"sejf-plikow/internal/database"
	"sejf-plikow/internal/tree"

	"go.uber.org/zap"
)

// ProblemDetail is an RFC 7807 error body.
type ProblemDetail struct {
	Type   string `json:"type" example:"about:blank"`
	Title  string `json:"title" example:"Not Found"`
	Status int    `json:"status" example:"404"`
	Detail string `json:"detail,omitempty" example:"resource not found"`
}

// errorResponse maps a domain error to a status code and the detail shown to
// the client. Credential and lookup failures get fixed details so that they
// never reveal which part of the request was wrong.
func errorResponse(err error) (int, string) {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, "request body too large"
	case errors.Is(err, auth.ErrMalformedPayload):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, account.ErrInvalidCredentials):
		return http.StatusUnauthorized, account.ErrInvalidCredentials.Error()
	case errors.Is(err, account.ErrInactiveUser):
		return http.StatusForbidden, account.ErrInactiveUser.Error()
	case errors.Is(err, auth.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired"
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, account.ErrInvalidProfile),
		errors.Is(err, tree.ErrValidation),
		errors.Is(err, tree.ErrInvalidMove):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, database.ErrDuplicateUsername):
		return http.StatusConflict, "username already taken"
	case errors.Is(err, database.ErrDuplicateEmail):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, database.ErrDuplicateName):
		return http.StatusConflict, "an item with this name already exists in the target folder"
	case errors.Is(err, tree.ErrParentNotFound):
		return http.StatusNotFound, tree.ErrParentNotFound.Error()
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// respondError writes err as problem+json. Server errors are logged with
// their full chain and answered with a generic body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := errorResponse(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="sejf-plikow"`)
	}
	respondProblem(w, status, detail)
}

func respondProblem(w http.ResponseWriter, status int, detail string) {
	payload, _ := json.Marshal(ProblemDetail{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	w.Write(payload)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		respondProblem(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// readJSON decodes a bounded JSON body into dest and answers the request
// itself when that fails.
func readJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			respondProblem(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			respondProblem(w, http.StatusBadRequest, "invalid JSON body")
		}
		return false
	}
	return true
}
