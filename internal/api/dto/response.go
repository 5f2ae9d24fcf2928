package dto

// Envelope is the uniform response wrapper the dashboard expects.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK wraps a successful payload.
func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail wraps an error message with a null payload.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message, Data: nil}
}
