package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/sawpanic/cea/internal/application/advisor"
	"github.com/sawpanic/cea/internal/companies"
	httpContracts "github.com/sawpanic/cea/internal/http"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// MsgInvalidJSON answers bodies that are not a JSON object of the expected shape
const MsgInvalidJSON = "Invalid JSON body."

// Recorder receives domain events for metrics
type Recorder interface {
	RecordAdvice(sector string, usage int)
	RecordRefusal(sector string)
	RecordRejected(endpoint, reason string)
	RecordCompanyCreated(sector string)
}

type nopRecorder struct{}

func (nopRecorder) RecordAdvice(string, int)      {}
func (nopRecorder) RecordRefusal(string)          {}
func (nopRecorder) RecordRejected(string, string) {}
func (nopRecorder) RecordCompanyCreated(string)   {}

// Options wires the handlers to their state
type Options struct {
	Advisor   *advisor.Service
	Companies *companies.Registry
	StaticDir string
	Metrics   Recorder
	Version   string

	// ForwardingState reports alert forwarding status for /health; nil means disabled
	ForwardingState func() string

	// CheckOrigin gates websocket upgrades; nil allows every origin
	CheckOrigin func(r *http.Request) bool
}

// Handlers manages all HTTP endpoint handlers
type Handlers struct {
	advisor         *advisor.Service
	companies       *companies.Registry
	staticDir       string
	metrics         Recorder
	version         string
	forwardingState func() string
	started         time.Time
	upgrader        websocket.Upgrader
}

// NewHandlers creates a new handlers instance
func NewHandlers(opts Options) *Handlers {
	h := &Handlers{
		advisor:         opts.Advisor,
		companies:       opts.Companies,
		staticDir:       opts.StaticDir,
		metrics:         opts.Metrics,
		version:         opts.Version,
		forwardingState: opts.ForwardingState,
		started:         time.Now(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     opts.CheckOrigin,
		},
	}
	if h.metrics == nil {
		h.metrics = nopRecorder{}
	}
	if h.upgrader.CheckOrigin == nil {
		h.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}
	return h
}

// writeJSON writes JSON response with proper error handling
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Int("status", status).Msg("Failed to encode response")
	}
}

// writeError writes the standard {"error": message} body
func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, httpContracts.ErrorResponse{Error: message})
}

// writeCodedError adds a machine-readable code for transport-level failures
func (h *Handlers) writeCodedError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, httpContracts.ErrorResponse{Error: message, Code: code})
}

// decodeJSON reads a single JSON object into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

// NotFound handles 404 responses
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeCodedError(w, http.StatusNotFound, "endpoint_not_found",
		"The requested endpoint does not exist")
}

// MethodNotAllowed handles 405 responses
func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeCodedError(w, http.StatusMethodNotAllowed, "method_not_allowed",
		"Method not allowed")
}
