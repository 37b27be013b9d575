package transport

import "encoding/json"

// Envelope is the wire format every endpoint responds with. Clients key off
// the success flag; errors carry a machine-readable code and a human message.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody is the error half of the envelope. Details carries optional
// structured context, e.g. per-dependency status on a degraded health check.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// NewError returns an error envelope.
func NewError(code, message string) Envelope {
	return Envelope{Error: &ErrorBody{Code: code, Message: message}}
}

// NewErrorWithDetails returns an error envelope with structured context.
func NewErrorWithDetails(code, message string, details interface{}) Envelope {
	return Envelope{Error: &ErrorBody{Code: code, Message: message, Details: details}}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
