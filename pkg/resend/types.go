package resend

import "fmt"

// SendRequest is the payload for POST /emails.
type SendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendResponse is the success answer: the provider-assigned message id.
type SendResponse struct {
	ID string `json:"id"`
}

// errorBody mirrors the provider's error envelope.
type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// APIError is a non-2xx answer from the email provider.
type APIError struct {
	StatusCode int
	Name       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("resend: upstream returned %d (%s): %s", e.StatusCode, e.Name, e.Message)
}
