package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	httputils "chatrelay/chatrelay/utils/http"
	"chatrelay/chatrelay/utils/logging"
)

// Generator is the text-completion collaborator. It may be slow and it
// may fail; callers must treat it as best-effort.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
}

func NewGeminiClient(apiKey, model string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// Complete runs one completion with a hard deadline. Expiry surfaces as
// an error like any other provider failure.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	defer logging.LogDuration(ctx, "gemini_complete")()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	var resp struct {
		Candidates []struct {
			Content struct {
				Parts []geminiPart `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := httputils.PostJSON(ctx, url, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}
	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text), nil
}
