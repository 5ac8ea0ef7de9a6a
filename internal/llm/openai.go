package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// openAIClient implements LLMClient against an OpenAI-compatible
// /v1/chat/completions endpoint.
type openAIClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewOpenAIClient creates an LLMClient for OpenAI or any server speaking its
// chat completions protocol. cfg.APIKey is sent as a bearer token.
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &openAIClient{cfg: cfg, http: newHTTPClient(), observer: observer}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	params := resolveParams(c.cfg, req)
	body := chatRequest{
		Model:       c.cfg.Model,
		Temperature: params.temperature,
		MaxTokens:   params.maxTokens,
	}
	if req.SystemPrompt != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	if req.UserPrompt != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.UserPrompt})
	}

	return generateWithRetry(ctx, c.cfg, c.observer, req.Task, func(ctx context.Context) (string, string, error) {
		raw, err := postJSON(ctx, c.http, c.cfg.Endpoint+"/v1/chat/completions", body, c.authHeader())
		if err != nil {
			return "", "", err
		}
		var resp chatResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return "", "", fmt.Errorf("decoding response: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", resp.Model, nil
		}
		return resp.Choices[0].Message.Content, resp.Model, nil
	})
}

func (c *openAIClient) authHeader() http.Header {
	h := http.Header{}
	if c.cfg.APIKey != "" {
		h.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
	return h
}

func (c *openAIClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/v1/models", nil)
	if err != nil {
		return false
	}
	for k, vs := range c.authHeader() {
		req.Header[k] = vs
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
