package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swych-ai/swych_api/internal/service"
	"github.com/swych-ai/swych_api/pkg/gemini"
)

type stubGenerator struct {
	responses map[string]json.RawMessage
	errs      map[string]error
	calls     []string
}

func (s *stubGenerator) GenerateContent(_ context.Context, model string, _ *gemini.GenerateRequest) (json.RawMessage, error) {
	s.calls = append(s.calls, model)
	if err, ok := s.errs[model]; ok {
		return nil, err
	}
	return s.responses[model], nil
}

func newChatRouter(gen service.Generator, models []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewChatHandler(service.NewChatService(gen, models))
	router := gin.New()
	router.POST("/api/chat", h.Chat)
	return router
}

func TestChatHandlerSuccessReturnsRawPayload(t *testing.T) {
	upstream := `{"candidates":[{"content":{"parts":[{"text":"We offer AI chatbots."}]}}]}`
	gen := &stubGenerator{responses: map[string]json.RawMessage{
		"gemini-2.5-flash": json.RawMessage(upstream),
	}}
	router := newChatRouter(gen, []string{"gemini-2.5-flash"})

	w := doJSON(t, router, http.MethodPost, "/api/chat",
		`{"contents":[{"role":"user","parts":[{"text":"what do you sell?"}]}]}`)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, upstream, w.Body.String())
}

func TestChatHandlerFallsBackAcrossModels(t *testing.T) {
	gen := &stubGenerator{
		errs: map[string]error{
			"gemini-2.5-flash": &gemini.APIError{StatusCode: 503, Message: "overloaded"},
		},
		responses: map[string]json.RawMessage{
			"gemini-1.5-flash": json.RawMessage(`{"candidates":[]}`),
		},
	}
	router := newChatRouter(gen, []string{"gemini-2.5-flash", "gemini-1.5-flash"})

	w := doJSON(t, router, http.MethodPost, "/api/chat",
		`{"contents":[{"role":"user","parts":[{"text":"hi"}]}]}`)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, []string{"gemini-2.5-flash", "gemini-1.5-flash"}, gen.calls)
}

func TestChatHandlerAllModelsFailMirrorsUpstreamStatus(t *testing.T) {
	gen := &stubGenerator{
		errs: map[string]error{
			"gemini-2.5-flash": &gemini.APIError{StatusCode: 500, Message: "internal"},
			"gemini-1.5-flash": &gemini.APIError{StatusCode: 429, Message: "quota exceeded"},
		},
	}
	router := newChatRouter(gen, []string{"gemini-2.5-flash", "gemini-1.5-flash"})

	w := doJSON(t, router, http.MethodPost, "/api/chat",
		`{"contents":[{"role":"user","parts":[{"text":"hi"}]}]}`)
	assert.Equal(t, 429, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Failed to process chat message. Please try again.", body["error"])
	assert.Equal(t, "quota exceeded", body["details"])
}

func TestChatHandlerNotConfigured(t *testing.T) {
	router := newChatRouter(nil, []string{"gemini-2.5-flash"})

	w := doJSON(t, router, http.MethodPost, "/api/chat",
		`{"contents":[{"role":"user","parts":[{"text":"hi"}]}]}`)
	assert.Equal(t, 503, w.Code)
	assert.Equal(t, "AI service is not configured. Please contact support.", decodeBody(t, w)["error"])
}

func TestChatHandlerValidation(t *testing.T) {
	gen := &stubGenerator{}
	router := newChatRouter(gen, []string{"gemini-2.5-flash"})

	tests := []struct {
		name string
		body string
	}{
		{"empty contents", `{"contents":[]}`},
		{"missing contents", `{}`},
		{"bad role", `{"contents":[{"role":"assistant","parts":[{"text":"hi"}]}]}`},
		{"empty parts", `{"contents":[{"role":"user","parts":[]}]}`},
		{"malformed body", `{"contents":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/chat", tt.body)
			assert.Equal(t, 400, w.Code)
		})
	}
	require.Empty(t, gen.calls, "no upstream attempt on invalid input")
}
