// Package ai provides post-publish enrichment: skill extraction via Gemini
// and match rescoring against the match service. Enrichment is advisory; a
// posting is live whether or not any of this succeeds.
package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used for skill extraction.
const DefaultModel = "gemini-2.0-flash"

// Client implements skill extraction and match rescoring.
type Client struct {
	genaiClient     *genai.Client
	model           string
	matchServiceURL string
	httpClient      *http.Client
}

// Options configures the enrichment client.
type Options struct {
	Model   string
	Timeout time.Duration
}

// New creates an enrichment client. apiKey is the Gemini API key;
// matchServiceURL points at the match service. Either may be empty, which
// disables the corresponding half.
func New(ctx context.Context, apiKey, matchServiceURL string, opts *Options) (*Client, error) {
	model := DefaultModel
	timeout := 30 * time.Second
	if opts != nil {
		if opts.Model != "" {
			model = opts.Model
		}
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
	}

	c := &Client{
		model:           model,
		matchServiceURL: strings.TrimRight(matchServiceURL, "/"),
		httpClient:      &http.Client{Timeout: timeout},
	}

	if apiKey != "" {
		genaiClient, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		c.genaiClient = genaiClient
	}

	return c, nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	if c.genaiClient != nil {
		return c.genaiClient.Close()
	}
	return nil
}

// generateJSON runs a prompt expecting a JSON response and strips any
// markdown code fences the model wrapped it in.
func (c *Client) generateJSON(ctx context.Context, prompt string) (string, error) {
	if c.genaiClient == nil {
		return "", fmt.Errorf("no Gemini API key configured")
	}

	model := c.genaiClient.GenerativeModel(c.model)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
