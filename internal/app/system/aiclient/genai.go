// internal/app/system/aiclient/genai.go
package aiclient

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/genai"
)

// GenAI is the Client backed by the Gemini API.
type GenAI struct {
	client *genai.Client
	model  string
}

// NewGenAI creates a Gemini-backed client. model may be empty.
func NewGenAI(ctx context.Context, apiKey, model string) (*GenAI, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAI{client: client, model: model}, nil
}

// Model returns the default model name.
func (g *GenAI) Model() string { return g.model }

func (g *GenAI) modelFor(m string) string {
	if m == "" {
		return g.model
	}
	return m
}

// Complete implements Client.
func (g *GenAI) Complete(ctx context.Context, req Request) (Response, error) {
	var cfg *genai.GenerateContentConfig
	if req.WebSearch {
		cfg = &genai.GenerateContentConfig{
			Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelFor(req.Model), genai.Text(req.Prompt), cfg)
	if err != nil {
		return Response{}, err
	}

	return fromResponse(resp)
}

// fromResponse keeps the text and the grounding chunks of the first candidate.
func fromResponse(resp *genai.GenerateContentResponse) (Response, error) {
	out := Response{Text: resp.Text()}
	if out.Text == "" {
		return Response{}, ErrEmptyResponse
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, c := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if c == nil {
				continue
			}
			var chunk GroundingChunk
			if c.Web != nil {
				chunk.Web = &WebRef{URI: c.Web.URI, Title: c.Web.Title}
			}
			out.GroundingChunks = append(out.GroundingChunks, chunk)
		}
	}
	return out, nil
}

// NewChat implements Client.
func (g *GenAI) NewChat(ctx context.Context, cfg ChatConfig) (Chat, error) {
	var gc *genai.GenerateContentConfig
	if cfg.SystemInstruction != "" {
		gc = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser),
		}
	}
	chat, err := g.client.Chats.Create(ctx, g.modelFor(cfg.Model), gc, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return &genaiChat{chat: chat}, nil
}

type genaiChat struct {
	chat *genai.Chat
}

func (c *genaiChat) SendStream(ctx context.Context, msg string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for resp, err := range c.chat.SendMessageStream(ctx, genai.Part{Text: msg}) {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(resp.Text(), nil) {
				return
			}
		}
	}
}
