package oracle

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiOracle asks a Gemini model to propose words matching a
// pattern. Grounded on lborie-crossword's GeminiClient: a thin wrapper
// around *genai.Client plus a fixed model name, created once against
// Application Default Credentials and reused for every request.
type GeminiOracle struct {
	client    *genai.Client
	modelName string
}

// NewGeminiOracle creates an oracle using Application Default
// Credentials. Set GOOGLE_APPLICATION_CREDENTIALS to point at a
// service account key if running outside GCP.
func NewGeminiOracle(ctx context.Context, project, region string) (*GeminiOracle, error) {
	if region == "" {
		region = "europe-west1"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  project,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("oracle: create genai client: %w", err)
	}
	return &GeminiOracle{client: client, modelName: defaultGeminiModel}, nil
}

type geminiWordList struct {
	Words []string `json:"words"`
}

// Request implements csp.Oracle. The prompt asks for up to count
// uppercase words of the pattern's length that match it, returned as
// a JSON object so the response can be parsed without scraping
// free-form text out of the model's reply.
func (o *GeminiOracle) Request(ctx context.Context, pattern string, count int, used map[string]bool) ([]string, error) {
	excluded := make([]string, 0, len(used))
	for w := range used {
		excluded = append(excluded, w)
	}

	prompt := fmt.Sprintf(
		`List up to %d common uppercase English words of exactly %d letters that match the crossword pattern %q, where '.' is a wildcard matching any single letter. Do not include any of these already-used words: %v. Respond with only JSON: {"words": ["...", "..."]}.`,
		count, len(pattern), pattern, excluded,
	)

	resp, err := o.client.Models.GenerateContent(ctx, o.modelName,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.2)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("oracle: gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("oracle: empty gemini response")
	}

	var list geminiWordList
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, fmt.Errorf("oracle: parse gemini response: %w", err)
	}
	return list.Words, nil
}
