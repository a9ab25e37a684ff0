package fixture

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/roach88/qbridge/internal/harness"
)

// Config selects the completion endpoint and model for generation.
// BaseURL supports OpenAI-compatible providers; leave empty for the
// default endpoint.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// DefaultModel is used when the config names none.
const DefaultModel = "gpt-4o-mini"

// Generator produces test-case fixtures for circuits.
type Generator struct {
	client *openai.Client
	model  string
}

// New builds a Generator. The API key is required; everything else has
// defaults.
func New(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("fixture generator: API key not set")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
		slog.Warn("fixture model not configured, using default", "model", model)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Generator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Generate prompts the model with the circuit source and returns the
// parsed, schema-validated test cases.
func (g *Generator) Generate(ctx context.Context, qasmSource string, numQubits, count int) ([]harness.TestCase, error) {
	slog.Debug("generating test cases", "model", g.model, "qubits", numQubits, "count", count)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(qasmSource, numQubits, count)},
		},
		Temperature:         0.7,
		TopP:                0.9,
		MaxCompletionTokens: 1000,
	})
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("completion returned no choices")
	}

	raw, err := extractJSONArray(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	cases, err := harness.ParseCases([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("model output rejected: %w", err)
	}
	slog.Debug("generated test cases", "count", len(cases))
	return cases, nil
}

const systemPrompt = "You are a quantum computing assistant. You respond with JSON only, no prose."

func buildPrompt(qasmSource string, numQubits, count int) string {
	return fmt.Sprintf(`Generate %d test cases for this %d-qubit OpenQASM circuit. Return ONLY a JSON array of test cases with no additional text.
Each test case must be an object with these exact fields: "input_state", "expected_output", "description", and "measurement_probabilities".

OpenQASM code:
%s

Example of the expected format:
[
  {
    "input_state": "|00⟩",
    "expected_output": "(|00⟩ + |11⟩)/√2",
    "description": "Bell state generation test",
    "measurement_probabilities": {
      "00": 0.5,
      "11": 0.5
    }
  }
]`, count, numQubits, qasmSource)
}

// extractJSONArray pulls the outermost JSON array out of model output
// that may be wrapped in prose or code fences.
func extractJSONArray(s string) (string, error) {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON array in model output")
	}
	return s[start : end+1], nil
}
