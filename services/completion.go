package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"aiva/config"
	"aiva/errors"
)

const (
	defaultCompletionURL     = "https://api.mistral.ai/v1/chat/completions"
	defaultCompletionTimeout = 30 * time.Second
)

// CompletionMessage is one turn in the window sent upstream
type CompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []CompletionMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CompletionClient talks to the external chat-completion endpoint. A single
// upstream failure aborts the turn; there is no automatic retry.
type CompletionClient struct {
	url    string
	apiKey string
	client *http.Client
}

func NewCompletionClient() *CompletionClient {
	url := config.GetEnvDefault("COMPLETION_API_URL", defaultCompletionURL)
	return &CompletionClient{
		url:    url,
		apiKey: config.GetEnv("COMPLETION_API_KEY"),
		client: &http.Client{Timeout: defaultCompletionTimeout},
	}
}

// Complete sends the history window and returns the assistant reply text
func (c *CompletionClient) Complete(ctx context.Context, model string, history []CompletionMessage) (string, error) {
	if c.apiKey == "" {
		return "", errors.NewAppError(errors.ErrCodeUpstream, "Completion API key is not configured", nil)
	}

	requestBody, err := json.Marshal(completionRequest{
		Model:    model,
		Messages: history,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.NewAppError(errors.ErrCodeUpstream, "Completion request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewAppError(errors.ErrCodeUpstream, "Could not read completion response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.NewAppError(errors.ErrCodeUpstream,
			fmt.Sprintf("Completion endpoint returned status %d", resp.StatusCode), errors.ErrUpstreamStatus)
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil || len(completion.Choices) == 0 {
		return "", errors.NewAppError(errors.ErrCodeUpstream, "Completion response is malformed", errors.ErrUpstreamResponse)
	}

	return completion.Choices[0].Message.Content, nil
}
