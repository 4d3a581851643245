package dto

// FieldError points at a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Response is the uniform envelope for user CRUD endpoints.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// AuthResponse is the envelope for auth endpoints; the created or
// authenticated user rides under "user" rather than "data".
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *User        `json:"user,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

func Fail(message string, errs ...FieldError) Response {
	return Response{Success: false, Message: message, Errors: errs}
}
