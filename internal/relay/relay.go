// Package relay forwards form submissions to the configured webhook.
package relay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	DefaultSource = "Solida Städ & Fönsterputs AB - Anbudsapp"
	unknown       = "Unknown"
	successMsg    = "Anbudsdata skickad framgångsrikt"
)

var (
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrMissingCustomer = errors.New("missing required customer information")
	ErrNotConfigured   = errors.New("webhook configuration missing")
)

// UpstreamError reports a non-2xx answer from the webhook.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("webhook delivery failed: status %d", e.Status)
}

// Meta describes the inbound request for payload enrichment.
type Meta struct {
	UserAgent    string
	ForwardedFor string
	ClientIP     string
	RemoteAddr   string
}

// IP returns the best-known client address.
func (m Meta) IP() string {
	for _, v := range []string{m.ForwardedFor, m.ClientIP, m.RemoteAddr} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return unknown
}

// Result is the success body returned to the caller.
type Result struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	QuoteNumber any    `json:"quoteNumber"`
	Timestamp   string `json:"timestamp"`
	RelayStatus int    `json:"relayStatus"`
}

// Forwarder delivers an encoded payload and reports the HTTP status.
type Forwarder interface {
	Forward(ctx context.Context, url string, body []byte) (int, error)
}

// Service validates, enriches and forwards submissions.
type Service struct {
	WebhookURL string
	Forwarder  Forwarder
	Source     string
	Now        func() time.Time
	NewID      func() string
}

// NewService returns a Service with the default source label and clock.
func NewService(webhookURL string, f Forwarder) *Service {
	return &Service{
		WebhookURL: webhookURL,
		Forwarder:  f,
		Source:     DefaultSource,
		Now:        time.Now,
		NewID:      uuid.NewString,
	}
}

// Relay forwards body once. Errors are one of the package sentinels, an
// *UpstreamError, or a transport failure.
func (s *Service) Relay(ctx context.Context, body []byte, meta Meta) (Result, error) {
	payload, err := decodeObject(body)
	if err != nil {
		return Result{}, err
	}
	if !hasCustomer(payload) {
		return Result{}, ErrMissingCustomer
	}
	if strings.TrimSpace(s.WebhookURL) == "" {
		return Result{}, ErrNotConfigured
	}

	ts := s.Now().UTC().Format(time.RFC3339Nano)
	userAgent := meta.UserAgent
	if userAgent == "" {
		userAgent = unknown
	}
	payload["källa"] = s.Source
	payload["tidsstämpel"] = ts
	payload["användarAgent"] = userAgent
	payload["ipAdress"] = meta.IP()
	payload["inlämningsId"] = s.NewID()

	enriched, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("encode enriched payload: %w", err)
	}

	status, err := s.Forwarder.Forward(ctx, s.WebhookURL, enriched)
	if err != nil {
		return Result{}, fmt.Errorf("forward to webhook: %w", err)
	}
	if status < 200 || status > 299 {
		return Result{}, &UpstreamError{Status: status}
	}

	return Result{
		Success:     true,
		Message:     successMsg,
		QuoteNumber: payload["anbudsNummer"],
		Timestamp:   ts,
		RelayStatus: status,
	}, nil
}

func decodeObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return nil, ErrInvalidJSON
	}
	return payload, nil
}

func hasCustomer(payload map[string]any) bool {
	info, ok := payload["kundInfo"].(map[string]any)
	if !ok {
		return false
	}
	for _, key := range []string{"företag", "namn"} {
		if v, ok := info[key].(string); ok && strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
