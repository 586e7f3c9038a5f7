package relay

import (
	"errors"
	"io"
	"log"
	"net"
	"net/http"

	"github.com/goccy/go-json"
)

const maxBodyBytes = 5 << 20

// Handler serves the public submit endpoint.
type Handler struct {
	Service *Service
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORS(w.Header())

	switch r.Method {
	case http.MethodOptions:
		writeJSON(w, http.StatusOK, map[string]any{"message": "CORS preflight successful"})
		return
	case http.MethodPost:
	default:
		log.Printf("relay: method %s not allowed", r.Method)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "Method not allowed"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.Printf("relay: read body: %v", err)
		status, resp := errorResponse(ErrInvalidJSON)
		writeJSON(w, status, resp)
		return
	}

	result, err := h.Service.Relay(r.Context(), body, MetaFromRequest(r))
	if err != nil {
		status, resp := errorResponse(err)
		log.Printf("relay: %v", err)
		writeJSON(w, status, resp)
		return
	}

	log.Printf("relay: forwarded submission, webhook status %d", result.RelayStatus)
	writeJSON(w, http.StatusOK, result)
}

// StatusFor maps a Relay error to its HTTP status.
func StatusFor(err error) int {
	status, _ := errorResponse(err)
	return status
}

func errorResponse(err error) (int, map[string]any) {
	var upstream *UpstreamError
	switch {
	case errors.Is(err, ErrInvalidJSON):
		return http.StatusBadRequest, map[string]any{"error": "Invalid JSON format"}
	case errors.Is(err, ErrMissingCustomer):
		return http.StatusBadRequest, map[string]any{"error": "Missing required customer information"}
	case errors.Is(err, ErrNotConfigured):
		return http.StatusInternalServerError, map[string]any{"error": "Webhook configuration missing"}
	case errors.As(err, &upstream):
		return http.StatusBadGateway, map[string]any{"error": "Webhook delivery failed", "relayStatus": upstream.Status}
	default:
		return http.StatusInternalServerError, map[string]any{
			"error":   "Internal server error",
			"message": "Ett systemfel uppstod vid bearbetning av anbudet",
		}
	}
}

// MetaFromRequest collects the enrichment fields from r.
func MetaFromRequest(r *http.Request) Meta {
	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}
	return Meta{
		UserAgent:    r.UserAgent(),
		ForwardedFor: r.Header.Get("X-Forwarded-For"),
		ClientIP:     r.Header.Get("X-Bb-Ip"),
		RemoteAddr:   remote,
	}
}

func setCORS(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	h.Set("Content-Type", "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("relay: write response: %v", err)
	}
}
