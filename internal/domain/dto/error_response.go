package dto

import "time"

// ErrorResponse is the standard error body returned by every endpoint.
//
// Fields:
//   - Message: short, client-facing description.
//   - ErrorDetails: underlying error text, if any.
//   - Timestamp: when the error was produced (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid selection"`
	ErrorDetails string    `json:"error_details,omitempty" example:"asset=\"doge\""`
	Timestamp    time.Time `json:"timestamp" example:"2025-09-15T12:00:00Z"`
}

// Error implements the error interface so the response can travel through gin's c.Error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse; err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
