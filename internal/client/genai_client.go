package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"book-talk-api/internal/metrics"
)

// genaiContent mirrors the generateContent request and response shape
type genaiContent struct {
	Role  string      `json:"role,omitempty"`
	Parts []genaiPart `json:"parts"`
}

type genaiPart struct {
	Text string `json:"text"`
}

type genaiRequest struct {
	Contents []genaiContent `json:"contents"`
}

type genaiResponse struct {
	Candidates []struct {
		Content genaiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ChatTurn is one prior exchange in a multi-turn conversation
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// GenAIClient defines the interface for the generative AI API
type GenAIClient interface {
	// GenerateText runs a single prompt and returns the model's reply
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateChat runs a prompt with prior conversation turns as context
	GenerateChat(ctx context.Context, history []ChatTurn, message string) (string, error)
}

// genaiClient implements GenAIClient against a Gemini-style REST endpoint
type genaiClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewGenAIClient creates a new generative AI API client
func NewGenAIClient(baseURL, apiKey, model string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) GenAIClient {
	return &genaiClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// GenerateText runs a single prompt and returns the model's reply
func (c *genaiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	request := genaiRequest{
		Contents: []genaiContent{
			{Role: "user", Parts: []genaiPart{{Text: prompt}}},
		},
	}
	return c.generate(ctx, request)
}

// GenerateChat runs a prompt with prior conversation turns as context
func (c *genaiClient) GenerateChat(ctx context.Context, history []ChatTurn, message string) (string, error) {
	contents := make([]genaiContent, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, genaiContent{
			Role:  turn.Role,
			Parts: []genaiPart{{Text: turn.Text}},
		})
	}
	contents = append(contents, genaiContent{
		Role:  "user",
		Parts: []genaiPart{{Text: message}},
	})
	return c.generate(ctx, genaiRequest{Contents: contents})
}

func (c *genaiClient) generate(ctx context.Context, request genaiRequest) (string, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)

	jsonBody, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal genai request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(endpoint, "POST", statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("GenAI API request failed",
			zap.Error(err),
			zap.Duration("duration", duration),
		)
		return "", fmt.Errorf("genai request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read genai response: %w", err)
	}

	var result genaiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode genai response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		status := ""
		if result.Error != nil {
			status = result.Error.Status
		}
		c.logger.Warn("GenAI API returned non-success status",
			zap.Int("status_code", resp.StatusCode),
			zap.String("status", status),
			zap.Duration("duration", duration),
		)
		return "", fmt.Errorf("genai returned status %d (%s)", resp.StatusCode, status)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("genai returned no candidates")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
