package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/lumenlabs/lumen/internal/domain"
)

// GeminiClient drives chat completions against the Gemini API (or Vertex AI
// when a project is configured instead of an API key).
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a client. apiKey selects the Gemini API backend;
// with an empty apiKey the project/location pair selects Vertex AI.
func NewGeminiClient(ctx context.Context, apiKey, projectID, location, modelName string) (*GeminiClient, error) {
	cc := &genai.ClientConfig{}
	switch {
	case apiKey != "":
		cc.APIKey = apiKey
		cc.Backend = genai.BackendGeminiAPI
	case projectID != "" && location != "":
		cc.Project = projectID
		cc.Location = location
		cc.Backend = genai.BackendVertexAI
	default:
		return nil, fmt.Errorf("either an API key or a project/location pair is required")
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

func toGenaiRole(r domain.Role) genai.Role {
	if r == domain.RoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// StreamReply implements domain.CompletionStreamer. Prior turns are replayed
// as conversation contents ahead of the new user text; chunks are forwarded
// to onChunk in arrival order.
func (g *GeminiClient) StreamReply(
	ctx context.Context,
	history []domain.Turn,
	text string,
	onChunk func(chunk string) error,
) error {
	var contents []*genai.Content
	for _, t := range history {
		contents = append(contents, genai.NewContentFromText(t.Text, toGenaiRole(t.Role)))
	}
	contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))

	temp := float32(0.7)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       &temp,
	}

	for res, err := range g.client.Models.GenerateContentStream(ctx, g.modelName, contents, cfg) {
		if err != nil {
			return fmt.Errorf("gemini stream: %w", err)
		}
		chunk := res.Text()
		if chunk == "" {
			continue
		}
		if err := onChunk(chunk); err != nil {
			return err
		}
	}
	return nil
}
