// Package sentiment wraps the HuggingFace Inference API text-classification
// endpoint. One Client speaks for one model; the service runs two of them,
// the five-bucket sentiment model and the generic fallback classifier.
package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sosai/internal/domain"
)

const DefaultBaseURL = "https://api-inference.huggingface.co"

type Client struct {
	baseURL string
	model   string
	token   string
	http    *http.Client
}

func NewClient(baseURL, model, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		model:   model,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

type classifyRequest struct {
	Inputs  string          `json:"inputs"`
	Options classifyOptions `json:"options"`
}

type classifyOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// Classify submits text and returns every (label, score) pair the model
// emits for it. Any transport or API failure is returned to the caller
// untouched; retry policy belongs to the caller.
func (c *Client) Classify(ctx context.Context, text string) ([]domain.SentimentScore, error) {
	body, _ := json.Marshal(classifyRequest{
		Inputs:  text,
		Options: classifyOptions{WaitForModel: true},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models/"+c.model, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classify %s: %w", c.model, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("classify %s: status=%d body=%s", c.model, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return parseScores(respBody)
}

// The inference API answers [[{label,score},...]] for single-input
// text-classification calls, but some models flatten to [{label,score},...].
func parseScores(body []byte) ([]domain.SentimentScore, error) {
	var nested [][]domain.SentimentScore
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 {
			return nil, fmt.Errorf("empty classifier response")
		}
		return nested[0], nil
	}

	var flat []domain.SentimentScore
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("invalid classifier response: %w", err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("empty classifier response")
	}
	return flat, nil
}
