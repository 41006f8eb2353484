package advice

import (
	"context"
	"fmt"

	"github.com/tartampluch/go-lunar/internal/config"
	"google.golang.org/genai"
)

const geminiTemperature float32 = 0.7

// GeminiGenerator generates text with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a client for apiKey. It performs no request.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrAdviceClient, err)
	}
	if model == "" {
		model = config.DefaultGeminiModel
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate implements TextGenerator.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	temp := geminiTemperature
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temp,
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// periodSchema constrains period answers to {"segments":[{"id":1,"desc":"..."}]}.
var periodSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"segments": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id":   {Type: genai.TypeInteger},
					"desc": {Type: genai.TypeString},
				},
				Required: []string{"id", "desc"},
			},
		},
	},
	Required: []string{"segments"},
}

// GenerateJSON implements JSONGenerator with the period schema.
func (g *GeminiGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	temp := geminiTemperature
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      &temp,
		ResponseMIMEType: config.MimeJSONPlain,
		ResponseSchema:   periodSchema,
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
