// Package llm implements the optional text-understanding collaborator via
// the OpenAI Chat Completions API (POST /v1/chat/completions).
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/vaibhaw-/LogLens/internal/loglens/config"
	"github.com/vaibhaw-/LogLens/internal/loglens/logger"
)

const systemPrompt = `You are a log parsing assistant. You receive a sample of
web-server access-log lines in an unrecognized format. Convert each line to a
JSON object with these keys where derivable: ip, timestamp, method, url,
status, bytes. Respond with a JSON array only, no prose, one object per input
line, in input order.`

type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client calls the Completions API with a bounded timeout. It satisfies
// parsers.SampleParser; every failure mode is a plain error so callers can
// fall back per their own policy.
type Client struct {
	baseURL string
	model   string
	apiKey  string
	httpc   *http.Client
}

// NewClient builds a collaborator client from config. Returns an error when
// the API key env var is unset, so callers can disable the collaborator
// instead of issuing doomed requests.
func NewClient(cc config.CollaboratorCfg) (*Client, error) {
	apiKey := strings.TrimSpace(os.Getenv(cc.APIKeyEnv))
	if apiKey == "" {
		return nil, fmt.Errorf("collaborator API key env %s is not set", cc.APIKeyEnv)
	}

	timeout := time.Duration(cc.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cc.BaseURL, "/"),
		model:   cc.Model,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
	}, nil
}

// ParseSample submits the sample lines and decodes the returned JSON array
// of canonical-shaped objects.
func (c *Client) ParseSample(ctx context.Context, lines []string) ([]map[string]interface{}, error) {
	reqBody, err := json.Marshal(completionRequest{
		Model: c.model,
		Messages: []completionMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: strings.Join(lines, "\n")},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read completion response: %w", err)
	}

	var cr completionResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("decode completion response: %w", err)
	}
	if cr.Error != nil {
		return nil, fmt.Errorf("completion API error: %s", cr.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completion API status %d", resp.StatusCode)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("completion response has no choices")
	}

	records, err := extractJSONArray(cr.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	logger.L().Debugw("collaborator sample parsed",
		"lines", len(lines),
		"records", len(records),
		"elapsed", time.Since(start))
	return records, nil
}

// extractJSONArray pulls the first JSON array out of the model output.
// Models occasionally wrap the array in code fences or stray prose.
func extractJSONArray(content string) ([]map[string]interface{}, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in collaborator response")
	}

	var records []map[string]interface{}
	if err := json.Unmarshal([]byte(content[start:end+1]), &records); err != nil {
		return nil, fmt.Errorf("decode collaborator records: %w", err)
	}
	return records, nil
}
