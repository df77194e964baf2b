package utils

// APIError is an error that carries the HTTP status and stable code string
// the boundary should report. Services return these for every expected
// failure; anything else is treated as an internal error at the handler.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Invalid builds a 400 validation error with a field-specific code.
func Invalid(code, message string) *APIError {
	return &APIError{Status: 400, Code: code, Message: message}
}

// NotFound builds a 404 error with a resource-specific code.
func NotFound(code, message string) *APIError {
	return &APIError{Status: 404, Code: code, Message: message}
}

// Unavailable builds a 503 error for endpoints whose upstream credential is
// not configured.
func Unavailable(message string) *APIError {
	return &APIError{Status: 503, Code: "SERVICE_UNAVAILABLE", Message: message}
}
