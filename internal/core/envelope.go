package core

// Ret codes carried by the error envelope.
const (
	RetBiz         = -1
	RetValidation  = -2
	RetNotFound    = -3
	RetUnavailable = -4
	RetRateLimited = -5
)

// ErrorEnvelope is the body of every failed API response.
type ErrorEnvelope struct {
	Ret    int          `json:"ret"`
	Msg    string       `json:"msg"`
	Fields []FieldError `json:"fields,omitempty"`
}
