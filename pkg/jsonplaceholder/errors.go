package jsonplaceholder

import (
	"fmt"
	"net/http"
)

// StatusError reports a non-2xx response from the remote API.
type StatusError struct {
	Code   int
	Method string
	Path   string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("jsonplaceholder: %s %s: unexpected status %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
}

// StatusCode returns the HTTP status of the failed response.
func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}
