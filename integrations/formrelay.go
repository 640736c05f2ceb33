package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/wingsengineering/wingsweb/metrics"
)

var (
	ErrRelayRejected      = errors.New("form relay rejected the submission")
	ErrRelayNotConfigured = errors.New("form relay access key not configured")
)

// maxRelayBody bounds how much of a relay response is read.
const maxRelayBody = 64 << 10

// FormRelay posts validated forms to the hosted form relay, which emails
// them to the sales inbox.
type FormRelay struct {
	endpoint  string
	accessKey string
	client    *http.Client
	logger    *zap.Logger
}

type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewFormRelay(endpoint, accessKey string, client *http.Client, logger *zap.Logger) *FormRelay {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormRelay{endpoint: endpoint, accessKey: accessKey, client: client, logger: logger}
}

// Payload builds the relay body: every field, then access_key and subject,
// which a field can never override.
func (r *FormRelay) Payload(subject string, fields map[string]string) map[string]string {
	body := make(map[string]string, len(fields)+2)
	for k, v := range fields {
		body[k] = v
	}
	body["access_key"] = r.accessKey
	body["subject"] = subject
	return body
}

// Submit sends one form. The call is not retried; ctx bounds it.
func (r *FormRelay) Submit(ctx context.Context, subject string, fields map[string]string) error {
	if r.accessKey == "" {
		return ErrRelayNotConfigured
	}
	data, err := json.Marshal(r.Payload(subject, fields))
	if err != nil {
		return fmt.Errorf("encode relay payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	timer := metrics.NewTimer()
	resp, err := r.client.Do(req)
	metrics.RelayDuration.Observe(timer.Duration().Seconds())
	if err != nil {
		return fmt.Errorf("post to form relay: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxRelayBody))
	var out relayResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.logger.Warn("form relay returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("message", out.Message),
		)
		return fmt.Errorf("%w: status %d", ErrRelayRejected, resp.StatusCode)
	}
	if decodeErr == nil && !out.Success {
		r.logger.Warn("form relay reported failure", zap.String("message", out.Message))
		return fmt.Errorf("%w: %s", ErrRelayRejected, out.Message)
	}
	return nil
}
