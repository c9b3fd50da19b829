package http

import (
	"errors"
	"net/http"

	"github.com/cherish-app/cherish/pkg/usecase"
	"github.com/cherish-app/cherish/pkg/utils/errutil"
)

// statusCode maps a failure to its HTTP status. Every API failure is reported
// as 400 Bad Request, whatever its cause.
func statusCode(err error) int {
	return http.StatusBadRequest
}

// isClientError reports failures caused by the request rather than the store
func isClientError(err error) bool {
	for _, sentinel := range []error{
		usecase.ErrValidation,
		usecase.ErrActionNotFound,
		usecase.ErrUserNotFound,
		usecase.ErrNotAuthorized,
		usecase.ErrNoApprovedActions,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// writeError logs err and writes body as the JSON string response. Failures
// that are not caused by the client are reported to Sentry.
func writeError(w http.ResponseWriter, r *http.Request, err error, body string) {
	if !isClientError(err) {
		errutil.Report(r.Context(), err)
	}
	errutil.HandleHTTP(r.Context(), w, err, statusCode(err), body)
}

// writeErrorWithCause writes prefix followed by the error text, the shape
// used by most failure responses.
func writeErrorWithCause(w http.ResponseWriter, r *http.Request, err error, prefix string) {
	writeError(w, r, err, prefix+err.Error())
}
