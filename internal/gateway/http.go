package gateway

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/muurk/cayenne/internal/logging"
	"github.com/muurk/cayenne/internal/version"
	"github.com/muurk/cayenne/lpp"
)

// typeInfo is the JSON shape of one registered type on /v1/types.
type typeInfo struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Size     int    `json:"size"`
	Standard bool   `json:"standard"`
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// StreamEvent is one decoded payload as broadcast to /v1/stream
// subscribers.
type StreamEvent struct {
	ReceivedAt  time.Time     `json:"received_at"`
	Source      string        `json:"source"`
	PayloadSize int           `json:"payload_size"`
	Document    *lpp.Document `json:"document"`
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/decode", s.instrument("/v1/decode", s.handleDecode))
	mux.HandleFunc("/v1/types", s.instrument("/v1/types", s.handleTypes))
	mux.HandleFunc("/v1/stream", s.handleStream)
	mux.HandleFunc("/healthz", s.instrument("/healthz", s.handleHealth))
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// instrument wraps a handler with request counting and timing.
func (s *Server) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.RecordHTTPRequest(r.Method, endpoint, strconv.Itoa(rec.status), time.Since(start).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// handleDecode accepts an LPP payload and returns the decoded document.
//
// The payload is the request body: raw bytes with
// Content-Type: application/octet-stream, otherwise a hex string
// (whitespace ignored).
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(s.config.Gateway.MaxPayloadBytes)*2+2)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large",
			fmt.Sprintf("payload exceeds %d bytes", s.config.Gateway.MaxPayloadBytes))
		return
	}

	payload := body
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/octet-stream") {
		payload, err = decodeHexBody(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_hex", err.Error())
			return
		}
	}
	if len(payload) > s.config.Gateway.MaxPayloadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large",
			fmt.Sprintf("payload exceeds %d bytes", s.config.Gateway.MaxPayloadBytes))
		return
	}

	doc, err := s.decoder.Decode(payload)
	if err != nil {
		kind := errorKind(err)
		s.metrics.RecordDecodeError(kind)
		logging.LogDecodeError(r.RemoteAddr, payload, err)
		writeError(w, statusFor(err), kind, err.Error())
		return
	}

	s.metrics.RecordDecode(len(payload))
	for _, key := range doc.Keys() {
		// Keys are "<TypeName>_<channel>", the name may itself
		// contain underscores.
		if i := strings.LastIndex(key, "_"); i > 0 {
			s.metrics.RecordRecord(key[:i])
		}
	}
	logging.LogDecode(r.RemoteAddr, len(payload), doc.Len())

	s.hub.broadcast(&StreamEvent{
		ReceivedAt:  time.Now().UTC(),
		Source:      r.RemoteAddr,
		PayloadSize: len(payload),
		Document:    doc,
	})

	writeJSON(w, http.StatusOK, doc)
}

// handleTypes lists every registered data type, standard and custom,
// ordered by id.
func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}

	types := s.decoder.Types()
	infos := make([]typeInfo, 0, len(types))
	for _, dt := range types {
		infos = append(infos, typeInfo{
			ID:       int(dt.ID),
			Name:     dt.Name,
			Size:     dt.Size,
			Standard: dt.Standard,
		})
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Full(),
	})
}

// handleStream upgrades the connection and subscribes it to the decoded
// payload broadcast.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}
	logging.LogConnection(r.RemoteAddr, "stream_subscribed")
	s.hub.subscribe(conn)
}

// decodeHexBody parses a hex-encoded payload, ignoring whitespace.
func decodeHexBody(body []byte) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, string(body))

	payload, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid hex payload: %w", err)
	}
	return payload, nil
}

// errorKind maps a decode error to its stable machine-readable name.
func errorKind(err error) string {
	switch {
	case errors.Is(err, lpp.ErrPayloadEmpty):
		return "payload_empty"
	case errors.Is(err, lpp.ErrUnknownDataType):
		return "unknown_data_type"
	case errors.Is(err, lpp.ErrBadPayloadFormat):
		return "bad_payload_format"
	default:
		return "unexpected"
	}
}

// statusFor maps a decode error to an HTTP status. Malformed input is the
// client's fault; an unknown type id is a semantic rejection; anything
// else is ours.
func statusFor(err error) int {
	switch {
	case errors.Is(err, lpp.ErrPayloadEmpty), errors.Is(err, lpp.ErrBadPayloadFormat):
		return http.StatusBadRequest
	case errors.Is(err, lpp.ErrUnknownDataType):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("Failed to write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, kind, detail string) {
	writeJSON(w, status, errorResponse{Error: kind, Detail: detail})
}
