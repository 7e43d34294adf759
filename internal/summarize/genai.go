// Package summarize implements the overflow.Summarizer contract on top of
// Google's Gemini API.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const prompt = `You are helping fit form data into a QR code. Summarize the following form submission so the result stays well under 2000 characters. Keep the "Password:" and "Form Type:" lines exactly as they are, then condense the remaining fields while preserving every factual detail. Return only the summarized text.

`

// Client summarizes text via Gemini.
type Client struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt+text), nil)
	if err != nil {
		return "", fmt.Errorf("GenAI summarize failed: %w", err)
	}
	summary := strings.TrimSpace(result.Text())
	if summary == "" {
		return "", fmt.Errorf("no summary returned")
	}
	return summary, nil
}

// Unconfigured stands in when no API key is set. Every call fails, which the
// pipeline surfaces as a summarization failure; short submissions are
// unaffected because the resolver only calls the summarizer past the limit.
type Unconfigured struct{}

func (Unconfigured) Summarize(context.Context, string) (string, error) {
	return "", errors.New("summarization is not configured")
}
