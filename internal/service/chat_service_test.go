package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swych-ai/swych_api/pkg/gemini"
)

type generateCall struct {
	model string
	req   *gemini.GenerateRequest
}

type fakeGenerator struct {
	calls   []generateCall
	results map[string]json.RawMessage
	errs    map[string]error
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{
		results: make(map[string]json.RawMessage),
		errs:    make(map[string]error),
	}
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, req *gemini.GenerateRequest) (json.RawMessage, error) {
	f.calls = append(f.calls, generateCall{model: model, req: req})
	if err, ok := f.errs[model]; ok {
		return nil, err
	}
	if raw, ok := f.results[model]; ok {
		return raw, nil
	}
	return nil, errors.New("no result configured")
}

func userContent(text string) gemini.Content {
	return gemini.Content{Role: "user", Parts: []gemini.Part{{Text: text}}}
}

func modelContent(text string) gemini.Content {
	return gemini.Content{Role: "model", Parts: []gemini.Part{{Text: text}}}
}

func TestChatServiceNotConfigured(t *testing.T) {
	svc := NewChatService(nil, []string{"gemini-2.5-flash"})
	_, err := svc.Chat(context.Background(), []gemini.Content{userContent("hi")})
	requireAPIError(t, err, 503, "SERVICE_UNAVAILABLE")
}

func TestChatServiceValidation(t *testing.T) {
	tests := []struct {
		name     string
		contents []gemini.Content
		wantCode string
	}{
		{"empty contents", nil, "INVALID_CONTENTS"},
		{"bad role", []gemini.Content{{Role: "system", Parts: []gemini.Part{{Text: "x"}}}}, "INVALID_ROLE"},
		{"empty parts", []gemini.Content{{Role: "user"}}, "INVALID_CONTENTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newFakeGenerator()
			svc := NewChatService(gen, []string{"gemini-2.5-flash"})
			_, err := svc.Chat(context.Background(), tt.contents)
			requireAPIError(t, err, 400, tt.wantCode)
			assert.Empty(t, gen.calls, "no upstream attempt on invalid input")
		})
	}
}

func TestChatServiceFirstModelWins(t *testing.T) {
	gen := newFakeGenerator()
	gen.results["gemini-2.5-flash"] = json.RawMessage(`{"candidates":[]}`)
	svc := NewChatService(gen, []string{"gemini-2.5-flash", "gemini-1.5-flash"})

	raw, err := svc.Chat(context.Background(), []gemini.Content{userContent("hello")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"candidates":[]}`, string(raw))
	require.Len(t, gen.calls, 1)
	assert.Equal(t, "gemini-2.5-flash", gen.calls[0].model)
}

func TestChatServiceFallsBackInOrder(t *testing.T) {
	gen := newFakeGenerator()
	gen.errs["gemini-2.5-flash"] = &gemini.APIError{StatusCode: 429, Message: "quota exceeded"}
	gen.results["gemini-1.5-flash"] = json.RawMessage(`{"candidates":[{"index":0}]}`)
	svc := NewChatService(gen, []string{"gemini-2.5-flash", "gemini-1.5-flash"})

	raw, err := svc.Chat(context.Background(), []gemini.Content{userContent("hello")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"candidates":[{"index":0}]}`, string(raw))
	require.Len(t, gen.calls, 2)
	assert.Equal(t, "gemini-2.5-flash", gen.calls[0].model)
	assert.Equal(t, "gemini-1.5-flash", gen.calls[1].model)
}

func TestChatServiceAllModelsFail(t *testing.T) {
	gen := newFakeGenerator()
	gen.errs["gemini-2.5-flash"] = &gemini.APIError{StatusCode: 500, Message: "internal"}
	gen.errs["gemini-1.5-flash"] = &gemini.APIError{StatusCode: 429, Message: "quota exceeded"}
	svc := NewChatService(gen, []string{"gemini-2.5-flash", "gemini-1.5-flash"})

	_, err := svc.Chat(context.Background(), []gemini.Content{userContent("hello")})
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	// The error mirrors the LAST attempt.
	assert.Equal(t, 429, upstream.Status)
	assert.Equal(t, "quota exceeded", upstream.Detail)
}

func TestChatServiceNonUpstreamFailure(t *testing.T) {
	gen := newFakeGenerator()
	gen.errs["gemini-2.5-flash"] = errors.New("dial tcp: connection refused")
	svc := NewChatService(gen, []string{"gemini-2.5-flash"})

	_, err := svc.Chat(context.Background(), []gemini.Content{userContent("hello")})
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, 500, upstream.Status)
}

func TestChatServicePrependsCompanyContext(t *testing.T) {
	gen := newFakeGenerator()
	gen.results["gemini-2.5-flash"] = json.RawMessage(`{}`)
	svc := NewChatService(gen, []string{"gemini-2.5-flash"})

	_, err := svc.Chat(context.Background(), []gemini.Content{userContent("what do you sell?")})
	require.NoError(t, err)

	req := gen.calls[0].req
	require.Len(t, req.Contents, 3)
	assert.Equal(t, "user", req.Contents[0].Role)
	assert.Equal(t, companyContext, req.Contents[0].Parts[0].Text)
	assert.Equal(t, "model", req.Contents[1].Role)
	assert.Equal(t, contextAck, req.Contents[1].Parts[0].Text)
	assert.Equal(t, "what do you sell?", req.Contents[2].Parts[0].Text)

	require.NotNil(t, req.GenerationConfig)
	assert.Equal(t, 0.7, req.GenerationConfig.Temperature)
	assert.Equal(t, 40, req.GenerationConfig.TopK)
	assert.Equal(t, 0.95, req.GenerationConfig.TopP)
	assert.Equal(t, 150, req.GenerationConfig.MaxOutputTokens)
	assert.Len(t, req.SafetySettings, 4)
}

// Long conversations keep only the most recent window, even at the cost of
// the injected company context.
func TestChatServiceWindowsHistory(t *testing.T) {
	gen := newFakeGenerator()
	gen.results["gemini-2.5-flash"] = json.RawMessage(`{}`)
	svc := NewChatService(gen, []string{"gemini-2.5-flash"})

	var history []gemini.Content
	for i := 0; i < 7; i++ {
		history = append(history, userContent("question"), modelContent("answer"))
	}
	history = append(history, userContent("latest"))

	_, err := svc.Chat(context.Background(), history)
	require.NoError(t, err)

	req := gen.calls[0].req
	require.Len(t, req.Contents, historyWindow)
	last := req.Contents[len(req.Contents)-1]
	assert.Equal(t, "latest", last.Parts[0].Text)
	assert.NotEqual(t, companyContext, req.Contents[0].Parts[0].Text)
}
