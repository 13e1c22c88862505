package contactpage

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/internal/apidoc"
	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
)

type handlers struct {
	controller *contact.Controller
	page       *render.Page
	doc        *apidoc.Document
	routes     routes
	opts       Options
	logger     *zap.Logger
}

type fieldResponse struct {
	Value   any    `json:"value"`
	Invalid bool   `json:"invalid"`
	Message string `json:"message,omitempty"`
}

type stateResponse struct {
	contact.ViewState
	Fields map[string]fieldResponse `json:"fields"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) guard(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if h.opts.Guard != nil {
			if err := h.opts.Guard(r); err != nil {
				writeGuardError(w, r, err)
				return
			}
		}
		next(w, r)
	})
}

func (h *handlers) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != h.routes.page {
		http.NotFound(w, r)
		return
	}
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	out, err := h.page.RenderController(r.Context(), h.controller)
	if err != nil {
		h.logger.Error("Render page failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", h.page.ContentType())
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(out)
}

func (h *handlers) submit(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	if !h.parseForm(w, r) {
		return
	}

	post, err := h.controller.SubmitValues(r.Context(), contactValues(r.PostForm))
	if !wantsJSON(r) {
		h.redirect(w, r)
		return
	}
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, post)
	case errors.Is(err, contact.ErrInvalidForm):
		writeJSON(w, http.StatusUnprocessableEntity, h.state())
	default:
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: contact.MsgSubmitFailed})
	}
}

// contactValues reads the posted fields. Unchecked checkboxes are absent from
// the body and read as false.
func contactValues(values url.Values) model.ContactForm {
	return model.ContactForm{
		Name:      values.Get(form.FieldName),
		Email:     values.Get(form.FieldEmail),
		Phone:     values.Get(form.FieldPhone),
		Message:   values.Get(form.FieldMessage),
		Agreement: form.ParseBool(values.Get(form.FieldAgreement)),
	}
}

func (h *handlers) selectUser(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	if !h.parseForm(w, r) {
		return
	}

	id, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("id")))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	if err := h.controller.SelectUserByID(id); err != nil {
		if errors.Is(err, contact.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.redirect(w, r)
}

func (h *handlers) refresh(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	if err := h.controller.Refresh(r.Context()); err != nil {
		h.logger.Debug("Refresh finished with error", zap.Error(err))
	}
	h.redirect(w, r)
}

func (h *handlers) serveState(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, h.state())
}

func (h *handlers) serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	h.doc.Handler().ServeHTTP(w, r)
}

func (h *handlers) state() stateResponse {
	states := h.controller.Form().States()
	resp := stateResponse{
		ViewState: h.controller.State(),
		Fields:    make(map[string]fieldResponse, len(states)),
	}
	for _, st := range states {
		resp.Fields[st.Spec.Name] = fieldResponse{
			Value:   st.Value,
			Invalid: st.Invalid,
			Message: st.Message,
		}
	}
	return resp
}

func (h *handlers) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *handlers) redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.routes.page, http.StatusSeeOther)
}

func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, method := range methods {
		if r.Method == method {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}
