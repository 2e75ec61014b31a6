package freshdesk

import (
	"errors"
	"fmt"
)

// UnknownErrorMessage is used when a rejection body carries no usable
// message field.
const UnknownErrorMessage = "Unknown error"

// APIError is returned when Freshdesk answered the request with a
// non-2xx status. Message is extracted best-effort from the response
// body and is safe to show to an end user.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("freshdesk rejected request: status %d: %s", e.StatusCode, e.Message)
}

// AsAPIError unwraps err into an *APIError when the failure was a
// rejected request rather than a transport problem.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
