package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/christinemirimba/VibeCodingHackathon/domain"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type (
	// Client is the model gateway: it sends a prompt to the hosted language
	// model and returns the raw reply text. Parsing the reply is the
	// caller's concern.
	Client interface {
		GenerateContent(ctx context.Context, prompt string) (string, error)
	}

	Config struct {
		APIKey  string
		Model   string
		BaseURL string
		Timeout time.Duration
	}

	client struct {
		config     Config
		httpClient *http.Client
	}

	generateContentRequest struct {
		Contents         []content        `json:"contents"`
		GenerationConfig generationConfig `json:"generationConfig"`
	}

	content struct {
		Parts []part `json:"parts"`
	}

	part struct {
		Text string `json:"text"`
	}

	generationConfig struct {
		Temperature float64 `json:"temperature"`
		TopP        float64 `json:"topP"`
		TopK        int     `json:"topK"`
	}

	generateContentResponse struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
)

func NewClient(config Config) Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

func (c *client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c.config.APIKey == "" {
		return "", domain.ErrModelInvalidCredentials
	}
	if c.config.Model == "" {
		return "", fmt.Errorf("%w: model name not configured", domain.ErrModelUnavailable)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.config.BaseURL, c.config.Model, c.config.APIKey)

	body := generateContentRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature: 0.7,
			TopP:        0.8,
			TopK:        40,
		},
	}

	requestJSON, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return "", domain.ErrModelRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", domain.ErrModelInvalidCredentials
	default:
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: %s - %s", domain.ErrModelUnavailable, resp.Status, string(bodyBytes))
	}

	var geminiResp generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", domain.ErrModelUnavailable, err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidate list", domain.ErrModelUnavailable)
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
