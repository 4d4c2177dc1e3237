package transport

import "encoding/json"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every API response. Reply carries the operation's reply name and
// RequestID correlates the response with its request.
type Envelope struct {
	Status    string      `json:"status"`
	Code      string      `json:"code,omitempty"`
	Reply     string      `json:"reply,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody describes a failure. Fields maps invalid input fields to the rule they broke.
type ErrorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details interface{}       `json:"details,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(reply string, data interface{}) Envelope {
	return Envelope{
		Status: StatusSuccess,
		Reply:  reply,
		Data:   data,
	}
}

// NewError returns an error envelope.
func NewError(code, reply string, body ErrorBody) Envelope {
	return Envelope{
		Status: StatusError,
		Code:   code,
		Reply:  reply,
		Error:  &body,
	}
}

// WithRequestID stamps the envelope with the request correlation id.
func (e Envelope) WithRequestID(id string) Envelope {
	e.RequestID = id
	return e
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
