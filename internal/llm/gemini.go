package llm

import (
	"context"
	"fmt"
	"time"

	genai "google.golang.org/genai"

	"genstudio/internal/logging"
	"genstudio/model"
)

const defaultModel = "gemini-2.0-flash"

// GeminiClient is a thin wrapper around the official genai client. The API
// key is read from the environment by the genai SDK (GEMINI_API_KEY).
type GeminiClient struct {
	cli   *genai.Client
	model string
	log   logging.Logger
}

func NewGeminiClient(ctx context.Context, modelName string, log logging.Logger) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("llm: create client: %w", err)
	}
	if modelName == "" {
		modelName = defaultModel
	}
	return &GeminiClient{cli: cli, model: modelName, log: logging.OrNop(log)}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }

// Generate sends the history plus the new prompt and returns the raw
// response text. Transient failures get a bounded retry with backoff.
func (g *GeminiClient) Generate(ctx context.Context, prompt string, history []model.Message) (string, error) {
	contents := historyContents(history)
	contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(300*(1<<attempt)) * time.Millisecond):
			}
		}

		resp, err := g.cli.Models.GenerateContent(ctx, g.model, contents, cfg)
		if err != nil {
			lastErr = err
			g.log.Warn("generation attempt %d failed: %v", attempt+1, err)
			continue
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
			len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = ErrEmptyResponse
			continue
		}
		return resp.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", fmt.Errorf("llm: generation failed: %w", lastErr)
}

func historyContents(history []model.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		role := genai.RoleUser
		if m.Role == model.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.Role(role)))
	}
	return contents
}
