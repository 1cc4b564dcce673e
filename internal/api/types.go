// Package api defines the JSON request and response types for the three
// backend endpoints consumed by the Chipi client. The same types are used by
// the development server so client and server cannot drift apart.
package api

// Endpoint paths. All endpoints accept POST with a JSON body and respond
// with a JSON body carrying a "success" flag.
const (
	LoginPath    = "/api/login"
	RegisterPath = "/api/register"
	MessagePath  = "/api/message"
)

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by /api/login. Phone is set only on
// success; Detail is set only on failure and may be empty even then.
type LoginResponse struct {
	Success bool   `json:"success"`
	Phone   string `json:"phone,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// RegisterResponse is the body returned by /api/register.
type RegisterResponse struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail,omitempty"`
}

// MessageRequest is the body of POST /api/message. Phone identifies the
// authenticated user; the backend is trusted to validate it.
type MessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// MessageResponse is the body returned by /api/message. Response carries the
// assistant's reply on success.
type MessageResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
	Detail   string `json:"detail,omitempty"`
}
