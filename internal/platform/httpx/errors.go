package httpx

import (
	"errors"
	"net/http"

	"github.com/shopvima/shopvima/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

// Denied sends the access-denied response for a missing permission. The
// permission name is included to aid debugging and support tickets.
func Denied(w http.ResponseWriter, permission string) {
	Problem(w, http.StatusForbidden, "Forbidden", "missing permission: "+permission)
}
