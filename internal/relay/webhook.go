package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
)

const userAgent = "Solida-Fonsterputs-Relay/1.0"

// WebhookClient posts payloads with fasthttp. Each call is a single attempt.
type WebhookClient struct {
	client  *fasthttp.Client
	timeout time.Duration
}

// NewWebhookClient returns a client that gives up after timeout.
func NewWebhookClient(timeout time.Duration) *WebhookClient {
	return &WebhookClient{
		client: &fasthttp.Client{
			Name:                      userAgent,
			MaxIdemponentCallAttempts: 1,
			ReadTimeout:               timeout,
			WriteTimeout:              timeout,
		},
		timeout: timeout,
	}
}

func (c *WebhookClient) Forward(ctx context.Context, url string, body []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.SetUserAgent(userAgent)
	req.SetBody(body)

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return 0, fmt.Errorf("post webhook: %w", err)
	}
	return resp.StatusCode(), nil
}
