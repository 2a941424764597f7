package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Lin-Jiong-HDU/unixai/internal/ai"
)

const (
	// SystemPrompt instructs the model to put its suggestion on a COMMAND: line.
	SystemPrompt = `You are a Unix expert. When answering:
1. If user needs a command, provide it on a line starting with "COMMAND:"
2. Explain what it does
3. Warn about any risks

Example:
COMMAND: find . -type f -size +10M
EXPLANATION: Finds files larger than 10MB
NOTES: May take time on large directories`

	DefaultBaseURL   = "https://api.openai.com/v1"
	DefaultModel     = "gpt-3.5-turbo"
	DefaultMaxTokens = 500
	DefaultTimeout   = 30 * time.Second
)

// Client implements ai.Provider for OpenAI-compatible chat completions
type Client struct {
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	requestID string
	http      *http.Client
	logger    *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithMaxTokens sets the max_tokens cap sent with every request.
func WithMaxTokens(n int) Option {
	return func(c *Client) { c.maxTokens = n }
}

// WithTimeout sets the overall request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRequestID tags requests with an X-Client-Request-Id header.
func WithRequestID(id string) Option {
	return func(c *Client) { c.requestID = id }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a new OpenAI client
func NewClient(apiKey, model, baseURL string, opts ...Option) *Client {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		apiKey:    apiKey,
		model:     model,
		baseURL:   baseURL,
		maxTokens: DefaultMaxTokens,
		http:      &http.Client{Timeout: DefaultTimeout},
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ask sends the question with the fixed system prompt and returns the reply text
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	if c.apiKey == "" {
		return "", ai.ErrMissingAPIKey
	}

	return c.callAPI(ctx, []ai.Message{
		{Role: "system", Content: SystemPrompt},
		{Role: "user", Content: question},
	})
}

type chatRequest struct {
	Model     string       `json:"model"`
	Messages  []ai.Message `json:"messages"`
	MaxTokens int          `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// callAPI makes the actual API call
func (c *Client) callAPI(ctx context.Context, messages []ai.Message) (string, error) {
	jsonBody, err := json.Marshal(chatRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.requestID != "" {
		req.Header.Set("X-Client-Request-Id", c.requestID)
	}

	start := time.Now()
	c.logger.Debug("sending chat completion", "model", c.model, "url", req.URL.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("chat completion answered", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &ai.StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var respData chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&respData); err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("failed to read response: %w", ai.ErrTimeout)
		}
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(respData.Choices) == 0 {
		return "", ai.ErrEmptyResponse
	}

	return respData.Choices[0].Message.Content, nil
}

func classifyTransportError(err error) error {
	if isTimeout(err) {
		return fmt.Errorf("request failed: %w", ai.ErrTimeout)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("request failed: %w", err)
	}
	return &ai.NetworkError{Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
