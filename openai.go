package commentator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Fixed generation parameters. The site makes exactly one upstream call per
// inbound request: no retries, no streaming, no backoff.
const (
	textModel       = "gpt-4o-mini"
	textTemperature = 0.4

	imageModel = "gpt-image-1"
	imageSize  = "1024x1024"
)

// OpenAI is a minimal client for the chat-completions and image-generations
// endpoints. It only covers the two calls the proxies need.
type OpenAI struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAI creates a client. baseURL is the API root without a trailing
// slash, e.g. "https://api.openai.com/v1".
func NewOpenAI(apiKey, baseURL string) *OpenAI {
	return &OpenAI{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// UpstreamError is a non-success response from the generation service. The
// proxies surface its Detail to the caller; transport errors stay generic.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation service returned status %d: %s", e.StatusCode, e.Detail)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateText sends one chat completion with a system instruction and user
// content and returns the trimmed generated text. An empty string with a nil
// error means the model produced no content.
func (o *OpenAI) GenerateText(ctx context.Context, system, user string, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model: textModel,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: textTemperature,
		MaxTokens:   maxTokens,
	}

	body, err := o.post(ctx, "/chat/completions", reqBody)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
	N      int    `json:"n"`
}

// ImageData is one generated image as the upstream returns it: either a
// hosted URL or inline base64 PNG bytes, depending on the model.
type ImageData struct {
	URL     string `json:"url"`
	B64JSON string `json:"b64_json"`
}

type imageResponse struct {
	Data []ImageData `json:"data"`
}

// GenerateImage requests exactly one square image for the prompt and returns
// the upstream image record unnormalized.
func (o *OpenAI) GenerateImage(ctx context.Context, prompt string) (ImageData, error) {
	reqBody := imageRequest{
		Model:  imageModel,
		Prompt: strings.TrimSpace(prompt),
		Size:   imageSize,
		N:      1,
	}

	body, err := o.post(ctx, "/images/generations", reqBody)
	if err != nil {
		return ImageData{}, err
	}

	var parsed imageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ImageData{}, fmt.Errorf("parse image response: %w", err)
	}
	if len(parsed.Data) == 0 {
		return ImageData{}, nil
	}
	return parsed.Data[0], nil
}

// post issues a single JSON request and returns the raw success body.
// Non-2xx responses become an *UpstreamError carrying the API's own message
// when one can be extracted, the raw body otherwise.
func (o *OpenAI) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Detail:     upstreamDetail(body, resp.Status),
		}
	}
	return body, nil
}

// upstreamDetail digs the human-readable message out of an API error body.
func upstreamDetail(body []byte, fallback string) string {
	var parsed struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return parsed.Error.Message
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	if len(body) > 0 {
		return string(body)
	}
	return fallback
}
