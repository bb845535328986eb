// Package llm calls the generation backend. The engine depends only on the
// Generator interface; the Gemini client is the production implementation.
package llm

import (
	"context"
	"errors"

	"genstudio/model"
)

// ErrEmptyResponse signals the model returned no usable text.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// Generator produces response text for a prompt, with the chat history as
// conversational context.
type Generator interface {
	Generate(ctx context.Context, prompt string, history []model.Message) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string, history []model.Message) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string, history []model.Message) (string, error) {
	return f(ctx, prompt, history)
}
