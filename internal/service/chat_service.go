package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/swych-ai/swych_api/internal/utils"
	"github.com/swych-ai/swych_api/pkg/gemini"
)

// companyContext is the fixed instruction block injected ahead of all
// caller-supplied content on every generation attempt.
const companyContext = `
You are an AI assistant for Swych, a company specializing in AI-powered solutions.

IMPORTANT RESPONSE RULES:
- Always respond in clear bullet points or numbered points.
- Every point must be justified with brief reasoning or context.
- Never exceed 200 words in total.
- Keep responses concise, structured, and easy to read.

Our products include:
1. AI Chatbot (Web & WhatsApp)
   - 24/7 interaction with website visitors and WhatsApp users
   - Answers FAQs, qualifies leads, and captures contact info
   - Integrates with your CRM for seamless lead management
   - Multi-language support and customizable tone

2. AI Voice Receptionist (Inbound Caller)
   - Professional phone answering service
   - Greets callers, schedules appointments, and routes calls
   - Works 24/7 with CRM integration to store caller details
   - Supports multiple languages

3. AI Outbound Caller (Lead Qualifier / Follow-up Agent)
   - Makes automated outbound calls to leads and customers
   - Qualifies leads by asking pre-defined questions
   - Updates CRM with lead responses and sends follow-up texts/emails

4. AI Knowledge Base & Document Assistant
   - Converts company documents into an interactive Q&A tool
   - Handles HR, employee, and customer queries with context-aware responses
   - Makes information instantly accessible for staff or customers

Your role:
- Answer questions about our AI solutions
- Help potential customers understand our products
- Provide information about pricing, features, and use cases
- Be professional, helpful, and concise
- If asked about technical details, provide clear explanations
- Always maintain a positive and solution-oriented tone

Company values:
- Innovation in AI technology
- Customer success and satisfaction
- Transparent and ethical AI practices
- Scalable and reliable solutions
`

// contextAck is the primer model turn acknowledging the instruction block.
const contextAck = "Understood. I will assist customers with information about Swych's AI communication solutions."

// historyWindow caps how many content entries (after prompt injection) ride
// on a request, keeping token usage bounded.
const historyWindow = 10

// Generator runs one completion attempt against a named model.
// *gemini.Client satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, req *gemini.GenerateRequest) (json.RawMessage, error)
}

// UpstreamError reports that every model in the fallback list failed.
// Status mirrors the last attempted model's failure.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("all models failed, last upstream status %d: %s", e.Status, e.Detail)
}

// ChatService proxies chat requests to the generative-language API with an
// ordered model fallback list. Each incoming request walks the full list
// independently; there is no shared state across requests.
type ChatService struct {
	gen    Generator
	models []string
}

// NewChatService constructs a ChatService. gen may be nil when no API key is
// configured, in which case Chat answers with a 503-style error.
func NewChatService(gen Generator, models []string) *ChatService {
	return &ChatService{gen: gen, models: models}
}

// Chat attempts generation against each configured model in order, one
// attempt per model, and returns the first successful raw upstream payload.
// When every model fails, the returned *UpstreamError mirrors the last
// attempt's status and detail; individual failures are observable only in
// logs.
func (s *ChatService) Chat(ctx context.Context, contents []gemini.Content) (json.RawMessage, error) {
	if s.gen == nil {
		return nil, utils.Unavailable("AI service is not configured. Please contact support.")
	}
	if len(contents) == 0 {
		return nil, utils.Invalid("INVALID_CONTENTS", "contents is required and must be a non-empty list")
	}
	for _, c := range contents {
		if c.Role != "user" && c.Role != "model" {
			return nil, utils.Invalid("INVALID_ROLE", "role must be 'user' or 'model'")
		}
		if len(c.Parts) == 0 {
			return nil, utils.Invalid("INVALID_CONTENTS", "each content entry must carry at least one text part")
		}
	}

	req := &gemini.GenerateRequest{
		Contents: s.buildContents(contents),
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 150,
		},
		SafetySettings: defaultSafetySettings(),
	}

	var lastErr error
	for _, model := range s.models {
		raw, err := s.gen.GenerateContent(ctx, model, req)
		if err == nil {
			log.Debug().Str("model", model).Msg("chat completion succeeded")
			return raw, nil
		}
		log.Warn().Err(err).Str("model", model).Msg("model attempt failed")
		lastErr = err
	}

	status := 500
	detail := "Failed to process chat message. Please try again."
	var apiErr *gemini.APIError
	if errors.As(lastErr, &apiErr) {
		status = apiErr.StatusCode
		detail = apiErr.Message
	}
	return nil, &UpstreamError{Status: status, Detail: detail}
}

// buildContents injects the company prompt and primer ahead of the caller's
// content and windows the combined list to its most recent entries.
func (s *ChatService) buildContents(history []gemini.Content) []gemini.Content {
	contents := make([]gemini.Content, 0, len(history)+2)
	contents = append(contents,
		gemini.Content{Role: "user", Parts: []gemini.Part{{Text: companyContext}}},
		gemini.Content{Role: "model", Parts: []gemini.Part{{Text: contextAck}}},
	)
	contents = append(contents, history...)
	if len(contents) > historyWindow {
		contents = contents[len(contents)-historyWindow:]
	}
	return contents
}

func defaultSafetySettings() []gemini.SafetySetting {
	categories := []string{
		"HARM_CATEGORY_HARASSMENT",
		"HARM_CATEGORY_HATE_SPEECH",
		"HARM_CATEGORY_SEXUALLY_EXPLICIT",
		"HARM_CATEGORY_DANGEROUS_CONTENT",
	}
	settings := make([]gemini.SafetySetting, 0, len(categories))
	for _, cat := range categories {
		settings = append(settings, gemini.SafetySetting{
			Category:  cat,
			Threshold: "BLOCK_MEDIUM_AND_ABOVE",
		})
	}
	return settings
}
