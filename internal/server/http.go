package server

import (
	"io"
	"net/http"

	"github.com/mj1618/uibridge/internal/output"
	"go.uber.org/zap"
)

// maxBodySize bounds request bodies; protocol bodies are small JSON objects.
const maxBodySize = 1 << 20

// HTTPHandler serves every request path through a Router. Successful
// commands answer 200 with the handler's response, failures 500 with
// {"error": message}.
type HTTPHandler struct {
	router *Router
	log    *zap.Logger
}

// NewHTTPHandler creates the HTTP transport for r.
func NewHTTPHandler(r *Router) *HTTPHandler {
	return &HTTPHandler{router: r, log: r.log}
}

func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp, err := h.serve(req)
	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
		resp = Response{"error": err.Error()}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := output.WriteJSON(w, resp, false); err != nil {
		h.log.Warn("write response", zap.String("uri", req.URL.Path), zap.Error(err))
	}
}

func (h *HTTPHandler) serve(req *http.Request) (Response, error) {
	data, err := io.ReadAll(io.LimitReader(req.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	body, err := ParseBody(data)
	if err != nil {
		return nil, err
	}
	return h.router.Dispatch(Command{Method: req.Method, URI: req.URL.Path, Body: body})
}
