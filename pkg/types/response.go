package types

// SuccessEnvelope is the response shape every successful endpoint returns.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// ErrorEnvelope carries a failure with a human-readable message and an
// optional itemized errors payload.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Errors  any    `json:"errors"`
}
