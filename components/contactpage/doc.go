// Package contactpage mounts the contact page on a net/http mux.
//
// The component serves the rendered page, accepts the contact form, user
// selection and refresh posts (redirecting back to the page), and exposes the
// view state and the OpenAPI description as JSON. Submissions that ask for
// application/json receive a JSON response instead of a redirect.
package contactpage
