package aiclient

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"
)

func TestNewGenAIRequiresKey(t *testing.T) {
	if _, err := NewGenAI(context.Background(), "", ""); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("NewGenAI(\"\") error = %v, want ErrMissingAPIKey", err)
	}
}

func TestFromResponseKeepsGrounding(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText("Try the Lotto fund.", genai.RoleModel),
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{URI: "https://nlcsa.org.za", Title: "NLC"}},
					{},
					nil,
				},
			},
		}},
	}

	got, err := fromResponse(resp)
	if err != nil {
		t.Fatalf("fromResponse error: %v", err)
	}
	want := Response{
		Text: "Try the Lotto fund.",
		GroundingChunks: []GroundingChunk{
			{Web: &WebRef{URI: "https://nlcsa.org.za", Title: "NLC"}},
			{},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fromResponse mismatch (-want +got):\n%s", diff)
	}
}

func TestFromResponseEmpty(t *testing.T) {
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}
	if _, err := fromResponse(resp); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("fromResponse(empty) error = %v, want ErrEmptyResponse", err)
	}
}
