package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"irportal/internal/facade"
	"irportal/internal/httputil"
)

// APIPrefix is stripped before a request reaches the facade
const APIPrefix = "/api"

// FacadeHandler bridges every JSON route under /api to the request facade
type FacadeHandler struct {
	facade *facade.Facade
	logger *slog.Logger
}

// NewFacadeHandler creates a new facade handler
func NewFacadeHandler(f *facade.Facade, logger *slog.Logger) *FacadeHandler {
	return &FacadeHandler{
		facade: f,
		logger: logger,
	}
}

// ServeHTTP forwards verb, path, query and raw JSON body
func (h *FacadeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := httputil.ReadJSON(w, r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	req := facade.Request{
		Verb:  r.Method,
		Path:  strings.TrimPrefix(r.URL.Path, APIPrefix),
		Query: r.URL.Query(),
	}
	if body != nil {
		req.Payload = body
	}

	h.dispatch(w, r, req)
}

// dispatch runs req through the facade and writes the outcome
func (h *FacadeHandler) dispatch(w http.ResponseWriter, r *http.Request, req facade.Request) {
	result, err := h.facade.Dispatch(r.Context(), req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if result == nil {
		httputil.RespondNoContent(w)
		return
	}
	httputil.RespondJSON(w, statusFor(r.Method), result)
}
