package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"catdocs-backend/internal/rewrite"
	"catdocs-backend/internal/shared/telemetry"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// minStoryChars is the floor below which a completion is treated as a
// degenerate response rather than a usable story.
const minStoryChars = 20

// Client implements rewrite.Client using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	MaxTokens        int           `json:"max_tokens,omitempty"`
	Temperature      *float32      `json:"temperature,omitempty"`
	FrequencyPenalty *float32      `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float32      `json:"presence_penalty,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate sends the persona prompt plus source text and returns the story.
func (c *Client) Generate(ctx context.Context, input rewrite.Input) (string, error) {
	if strings.TrimSpace(input.Text) == "" {
		// Callers enforce extraction-before-rewrite, so this is a logic
		// error upstream, guarded here so it never reaches the network.
		return "", &rewrite.Error{Kind: rewrite.KindEmptyInput, Detail: "no source text supplied"}
	}

	content, err := c.complete(ctx, rewrite.Messages(input.Text), 1000)
	if err != nil {
		return "", err
	}

	story := strings.TrimSpace(content)
	if story == "" {
		return "", &rewrite.Error{Kind: rewrite.KindEmptyResponse, Detail: "completion returned no content"}
	}
	if len(story) < minStoryChars {
		return "", &rewrite.Error{
			Kind:   rewrite.KindDegenerateResponse,
			Detail: fmt.Sprintf("completion returned %d characters, minimum is %d", len(story), minStoryChars),
		}
	}
	return story, nil
}

// IsAvailable issues a minimal completion call and reports success.
func (c *Client) IsAvailable(ctx context.Context) bool {
	probe := []rewrite.Message{{Role: "user", Content: "Say OK"}}
	_, err := c.complete(ctx, probe, 5)
	return err == nil
}

func (c *Client) complete(ctx context.Context, messages []rewrite.Message, maxTokens int) (string, error) {
	temp := float32(0.8)
	freqPenalty := float32(0.5)
	presPenalty := float32(0.2)

	reqMessages := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, chatMessage{Role: m.Role, Content: m.Content})
	}
	reqBody := chatRequest{
		Model:            c.model,
		Messages:         reqMessages,
		MaxTokens:        maxTokens,
		Temperature:      &temp,
		FrequencyPenalty: &freqPenalty,
		PresencePenalty:  &presPenalty,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &rewrite.Error{Kind: rewrite.KindTransportFault, Detail: fmt.Sprintf("encode request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", &rewrite.Error{Kind: rewrite.KindTransportFault, Detail: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		detail := err.Error()
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(detail, "Client.Timeout") {
			detail = "request timeout: " + detail
		}
		return "", &rewrite.Error{Kind: rewrite.KindTransportFault, Detail: detail}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &rewrite.Error{Kind: rewrite.KindTransportFault, Detail: fmt.Sprintf("read response: %v", err)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &rewrite.Error{Kind: rewrite.KindTransportFault, Detail: fmt.Sprintf("parse response: %v", err)}
	}
	if parsed.Error != nil {
		return "", &rewrite.Error{
			Kind:   rewrite.KindTransportFault,
			Detail: fmt.Sprintf("completion api error: %s (%s)", parsed.Error.Message, parsed.Error.Type),
		}
	}
	if len(parsed.Choices) == 0 {
		return "", &rewrite.Error{Kind: rewrite.KindEmptyResponse, Detail: "response missing choices"}
	}

	logUsage(c.model, parsed.Usage)
	return parsed.Choices[0].Message.Content, nil
}

func logUsage(model string, usage *struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}) {
	fields := map[string]any{"model": model}
	if usage != nil {
		fields["prompt_tokens"] = usage.PromptTokens
		fields["completion_tokens"] = usage.CompletionTokens
		fields["total_tokens"] = usage.TotalTokens
	}
	telemetry.Info("rewrite.completion", fields)
}

var _ rewrite.Client = (*Client)(nil)
