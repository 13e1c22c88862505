package contactpage

import (
	"errors"
	"net/http"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// writeGuardError answers a rejected request. The status comes from an
// HTTPError in the chain and defaults to 403; JSON clients get an error body.
func writeGuardError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if status := httpErr.StatusCode(); status > 0 {
			code = status
		}
	}
	if r != nil && wantsJSON(r) {
		writeJSON(w, code, errorResponse{Error: http.StatusText(code)})
		return
	}
	http.Error(w, http.StatusText(code), code)
}
