package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/swych-ai/swych_api/internal/models"
	"github.com/swych-ai/swych_api/internal/utils"
	"github.com/swych-ai/swych_api/pkg/resend"
)

// voiceDemoMarker in the message text marks a submission coming from the
// voice-demo widget rather than the general enquiry form.
const voiceDemoMarker = "Voice Demo Request"

// EmailSender submits one transactional email. *resend.Client satisfies it.
type EmailSender interface {
	Send(ctx context.Context, req *resend.SendRequest) (*resend.SendResponse, error)
}

// ContactStore persists audit copies of contact submissions.
// *repository.ContactMessageRepository satisfies it.
type ContactStore interface {
	Create(m *models.ContactMessage) error
}

// ContactService dispatches contact-form submissions through the email
// provider and keeps a stored copy of each one.
type ContactService struct {
	sender EmailSender
	store  ContactStore
	from   string
	to     []string
}

// NewContactService constructs a ContactService. sender may be nil when no
// provider key is configured, in which case Send answers with a 503-style
// error. store may be nil; storage failures are never surfaced either way.
func NewContactService(sender EmailSender, store ContactStore, from string, to []string) *ContactService {
	return &ContactService{sender: sender, store: store, from: from, to: to}
}

// ContactRequest is the contact-form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Send validates the submission, builds the HTML message, and submits it with
// a fixed recipient and reply-to set to the submitter. It returns the
// provider's message id.
func (s *ContactService) Send(ctx context.Context, req *ContactRequest) (string, error) {
	if s.sender == nil {
		return "", utils.Unavailable("Email service not configured")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return "", utils.Invalid("INVALID_REQUEST", "Name and email are required")
	}

	message := req.Message
	if strings.TrimSpace(message) == "" {
		message = fmt.Sprintf("Contact request from %s (%s)", name, email)
	}

	subject := "New Enquiry from " + name
	if strings.Contains(message, voiceDemoMarker) {
		subject = voiceDemoMarker + " from " + name
	}

	resp, err := s.sender.Send(ctx, &resend.SendRequest{
		From:    s.from,
		To:      s.to,
		ReplyTo: email,
		Subject: subject,
		HTML:    buildContactHTML(name, email, req.Company, req.Phone, message),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to send contact email")
		return "", &utils.APIError{Status: 500, Code: "EMAIL_SEND_FAILED", Message: "Failed to send email"}
	}

	if s.store != nil {
		m := &models.ContactMessage{
			Name:    name,
			Email:   email,
			Message: message,
			EmailID: &resp.ID,
		}
		if c := strings.TrimSpace(req.Company); c != "" {
			m.Company = &c
		}
		if p := strings.TrimSpace(req.Phone); p != "" {
			m.Phone = &p
		}
		if err := s.store.Create(m); err != nil {
			// Audit copy only; dispatch already succeeded.
			log.Warn().Err(err).Msg("failed to store contact message")
		}
	}

	return resp.ID, nil
}

// buildContactHTML renders the notification email. User-supplied fields are
// HTML-escaped before interpolation; newlines in the message become <br>.
func buildContactHTML(name, email, company, phone, message string) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f9f9; border-radius: 10px; }
      .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center; }
      .content { background: white; padding: 30px; border-radius: 0 0 10px 10px; }
      .field { margin-bottom: 20px; }
      .label { font-weight: bold; color: #667eea; margin-bottom: 5px; }
      .value { padding: 10px; background-color: #f5f5f5; border-radius: 5px; }
      .footer { text-align: center; margin-top: 20px; color: #888; font-size: 12px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>&#127881; New Enquiry Received!</h1>
        <p>You've received a new enquiry from your website</p>
      </div>
      <div class="content">
`)

	writeField(&b, "&#128100; Name:", html.EscapeString(name))
	writeField(&b, "&#128231; Email:", fmt.Sprintf(`<a href="mailto:%s">%s</a>`, html.EscapeString(email), html.EscapeString(email)))
	if company != "" {
		writeField(&b, "&#127970; Company:", html.EscapeString(company))
	}
	if phone != "" {
		writeField(&b, "&#128241; Phone:", html.EscapeString(phone))
	}
	writeField(&b, "&#128172; Message:", strings.ReplaceAll(html.EscapeString(message), "\n", "<br>"))

	b.WriteString(`      </div>
      <div class="footer">
        <p>This email was sent from the Swych.ai contact form</p>
      </div>
    </div>
  </body>
</html>
`)
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, `        <div class="field">
          <div class="label">%s</div>
          <div class="value">%s</div>
        </div>
`, label, value)
}
