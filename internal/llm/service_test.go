package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap/zaptest"
)

type fakeModel struct {
	reply       string
	err         error
	gotPrompt   string
	hadDeadline bool
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	_, f.hadDeadline = ctx.Deadline()
	for _, m := range messages {
		for _, part := range m.Parts {
			if text, ok := part.(llms.TextContent); ok {
				f.gotPrompt += text.Text
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestGenerate_PassesPromptAndReturnsCompletionVerbatim(t *testing.T) {
	model := &fakeModel{reply: "  Socks & Co.\n"}
	svc := NewWithModel(model, 0, zaptest.NewLogger(t))

	got, err := svc.Generate(context.Background(), "name a sock company")
	require.NoError(t, err)
	assert.Equal(t, "  Socks & Co.\n", got)
	assert.Equal(t, "name a sock company", model.gotPrompt)
	assert.False(t, model.hadDeadline)
}

func TestGenerate_WrapsBackendError(t *testing.T) {
	quota := errors.New("quota exceeded")
	svc := NewWithModel(&fakeModel{err: quota}, 0, zaptest.NewLogger(t))

	_, err := svc.Generate(context.Background(), "hi")
	require.ErrorIs(t, err, quota)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerate_AppliesTimeout(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	svc := NewWithModel(model, time.Minute, zaptest.NewLogger(t))

	_, err := svc.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.True(t, model.hadDeadline)
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr bool
	}{
		{"nil response", nil, "", true},
		{"no candidates", &genai.GenerateContentResponse{}, "", true},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, "", true},
		{
			"joins text parts",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello, "), genai.Text("world")}},
			}}},
			"Hello, world",
			false,
		},
		{
			"only non-text parts",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}},
			}}},
			"",
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := responseText(tc.resp)
			if tc.wantErr {
				assert.ErrorIs(t, err, errEmptyResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
