package api

import "encoding/json"

// BackendError is a non-2xx backend response. Message is the backend's
// reported error text when it provided one, otherwise a generic fallback.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return e.Message
}

// errorFromResponse decodes the optional {"error": "..."} body shape.
func errorFromResponse(statusCode int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	message := genericErrorMessage
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		message = payload.Error
	}
	return &BackendError{StatusCode: statusCode, Message: message}
}
