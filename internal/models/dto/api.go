package dto

import "encoding/json"

// APIRequest is the JSON envelope accepted by the /api endpoint. Operation
// selects the query or mutation; Token optionally carries the session token
// (the Authorization header takes precedence); Params holds the
// operation-specific payload.
type APIRequest struct {
	Operation string          `json:"operation" validate:"required"`
	Token     string          `json:"token,omitempty"`
	Params    json.RawMessage `json:"params,omitempty"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RateLimitResponse is returned when the rate limiter rejects a request.
type RateLimitResponse struct {
	Message string `json:"message"`
}
