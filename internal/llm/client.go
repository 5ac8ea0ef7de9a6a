package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the trimmed text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the model server is reachable.
	Available(ctx context.Context) bool
}

// NewClient builds the client for cfg.Provider.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	switch cfg.Provider {
	case ProviderOllama, "":
		return NewOllamaClient(cfg, observer), nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewOpenAIClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
}

// callParams are the resolved sampling settings for one request.
type callParams struct {
	temperature float64
	maxTokens   int
}

func resolveParams(cfg LLMConfig, req GenerateRequest) callParams {
	taskCfg := cfg.Tasks[req.Task]
	p := callParams{temperature: taskCfg.Temperature, maxTokens: taskCfg.MaxTokens}
	if req.Temperature != nil {
		p.temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		p.maxTokens = *req.MaxTokens
	}
	return p
}

// attemptFunc performs one HTTP round trip and returns the raw text and the
// model that produced it.
type attemptFunc func(ctx context.Context) (text, model string, err error)

// generateWithRetry runs attempt up to 1+MaxRetries times, each under the
// task's timeout, and reports the outcome to observer once.
func generateWithRetry(ctx context.Context, cfg LLMConfig, observer Observer, task TaskType, attempt attemptFunc) (*GenerateResponse, error) {
	start := time.Now()
	timeout := time.Duration(cfg.TaskTimeout(task)) * time.Millisecond

	var lastErr error
	attempts := 1 + cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		text, model, err := attempt(attemptCtx)
		timedOut := errors.Is(attemptCtx.Err(), context.DeadlineExceeded)
		cancel()

		if err == nil {
			text = strings.TrimSpace(text)
			if text == "" {
				lastErr = ErrEmptyOutput
				continue
			}
			latency := time.Since(start).Milliseconds()
			observer.OnCallComplete(LLMCallEvent{
				Task:      task,
				Model:     cfg.Model,
				LatencyMs: latency,
				Success:   true,
			})
			if model == "" {
				model = cfg.Model
			}
			return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
		}

		switch {
		case timedOut:
			lastErr = ErrTimeout
		case isConnectionError(err):
			lastErr = fmt.Errorf("%w: %v", ErrUnavailable, err)
		default:
			lastErr = err
		}

		// The caller gave up; further attempts would fail the same way.
		if ctx.Err() != nil {
			lastErr = ErrTimeout
			break
		}
	}

	observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Model:     cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(lastErr),
	})

	if errors.Is(lastErr, ErrTimeout) || errors.Is(lastErr, ErrUnavailable) {
		return nil, lastErr
	}
	return nil, fmt.Errorf("%w: %w", ErrRetryExhausted, lastErr)
}

// postJSON sends body to url and returns the response body of a 200 reply.
func postJSON(ctx context.Context, client *http.Client, url string, body any, header http.Header) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d: %s", httpResp.StatusCode, string(respBody))
	}
	return respBody, nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrEmptyOutput):
		return "EMPTY_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
