// Package msghttp exposes a catalog over HTTP: the client-side script, the
// msgpack bundle and single expanded messages.
package msghttp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/loopcontext/msgcode"
	"github.com/loopcontext/msgcode/export"
	"go.uber.org/zap"
)

type RouterCfg struct {
	Logger *zap.Logger
	// Prefix is prepended to every route, e.g. "/i18n".
	Prefix string
}

type MessageResponse struct {
	Code  string        `json:"code"`
	Level msgcode.Level `json:"level"`
	Text  string        `json:"text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type handler struct {
	catalog msgcode.Catalog
	log     *zap.Logger
}

// NewRouter serves:
//
//	GET /messages.js           client-side script
//	GET /messages.msgpack      msgpack bundle
//	GET /messages/{code}       expanded message, binds given as ?bind=...
func NewRouter(c msgcode.Catalog, cfg RouterCfg) *chi.Mux {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	h := &handler{catalog: c, log: cfg.Logger}

	prefix := strings.TrimSuffix(cfg.Prefix, "/")

	mux := chi.NewMux()
	mux.Get(prefix+"/messages.js", h.hScript)
	mux.Get(prefix+"/messages.msgpack", h.hBundle)
	mux.Get(prefix+"/messages/{code}", h.hMessage)

	return mux
}

func (h *handler) hScript(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := export.WriteScript(&buf, h.catalog); err != nil {
		h.replyError(w, http.StatusInternalServerError, "cannot generate script", "")
		h.log.Error("cannot generate script", zap.Error(err))
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *handler) hBundle(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := export.WriteBundle(&buf, h.catalog); err != nil {
		h.replyError(w, http.StatusInternalServerError, "cannot generate bundle", "")
		h.log.Error("cannot generate bundle", zap.Error(err))
		return
	}

	w.Header().Set("Content-Type", "application/msgpack")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *handler) hMessage(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	message, found := h.catalog.Get(code)
	if !found {
		h.replyError(w, http.StatusNotFound, "unknown message code", code)
		return
	}

	values := r.URL.Query()["bind"]
	binds := make([]interface{}, len(values))
	for i, value := range values {
		binds[i] = value
	}

	h.replyJSON(w, http.StatusOK, MessageResponse{
		Code:  message.Code(),
		Level: message.Level(),
		Text:  message.Expand(binds...),
	})
}

func (h *handler) replyError(w http.ResponseWriter, status int, msg string, code string) {
	h.replyJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

func (h *handler) replyJSON(w http.ResponseWriter, status int, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		h.log.Error("cannot encode response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
