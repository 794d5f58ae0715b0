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

const speechTimeout = 30 * time.Second

// Synthesizer turns reply text into a base64 audio payload
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) (string, error)
}

// Transcriber turns a base64 audio payload into text
type Transcriber interface {
	Transcribe(ctx context.Context, audio string) (string, error)
}

// HTTPSpeechClient implements both collaborators against external speech
// endpoints. The wire contract is a thin JSON POST either way.
type HTTPSpeechClient struct {
	ttsURL string
	sttURL string
	client *http.Client
}

func NewHTTPSpeechClient() *HTTPSpeechClient {
	return &HTTPSpeechClient{
		ttsURL: config.GetEnv("TTS_API_URL"),
		sttURL: config.GetEnv("STT_API_URL"),
		client: &http.Client{Timeout: speechTimeout},
	}
}

type synthesizeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type synthesizeResponse struct {
	Audio string `json:"audio"`
}

func (c *HTTPSpeechClient) Synthesize(ctx context.Context, text, language string) (string, error) {
	if c.ttsURL == "" {
		return "", errors.NewAppError(errors.ErrCodeUpstream, "TTS endpoint is not configured", nil)
	}

	var out synthesizeResponse
	if err := c.post(ctx, c.ttsURL, synthesizeRequest{Text: text, Language: language}, &out); err != nil {
		return "", err
	}
	if out.Audio == "" {
		return "", errors.NewAppError(errors.ErrCodeUpstream, "TTS response carries no audio", nil)
	}
	return out.Audio, nil
}

type transcribeRequest struct {
	Audio string `json:"audio"`
}

type transcribeResponse struct {
	Text string `json:"text"`
}

func (c *HTTPSpeechClient) Transcribe(ctx context.Context, audio string) (string, error) {
	if c.sttURL == "" {
		return "", errors.NewAppError(errors.ErrCodeUpstream, "STT endpoint is not configured", nil)
	}

	var out transcribeResponse
	if err := c.post(ctx, c.sttURL, transcribeRequest{Audio: audio}, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

func (c *HTTPSpeechClient) post(ctx context.Context, url string, in, out interface{}) error {
	requestBody, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeUpstream, "Speech request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeUpstream, "Could not read speech response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewAppError(errors.ErrCodeUpstream,
			fmt.Sprintf("Speech endpoint returned status %d", resp.StatusCode), nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.NewAppError(errors.ErrCodeUpstream, "Speech response is malformed", err)
	}
	return nil
}
