package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client calls the remote intent-classification endpoint. The wire
// contract is a single POST: {"command": "..."} in, categorical label
// plus confidence out.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

// Prediction is the endpoint's response payload.
type Prediction struct {
	Label      string  `json:"intencion"`
	Confidence float64 `json:"confianza"`
}

type predictRequest struct {
	Command string `json:"command"`
}

func NewClient(baseURL, apiKey string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Predict sends one utterance for classification. Any transport error,
// non-2xx status or malformed payload is returned as an error; the
// caller decides whether to fall back.
func (c *Client) Predict(ctx context.Context, command string) (*Prediction, error) {
	body, err := json.Marshal(predictRequest{Command: command})
	if err != nil {
		return nil, fmt.Errorf("failed to encode predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predict request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var pred Prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("failed to decode prediction: %w", err)
	}
	if pred.Label == "" {
		return nil, fmt.Errorf("classifier returned empty label")
	}

	return &pred, nil
}
