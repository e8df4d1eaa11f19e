package driftpay

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTransportUnavailable is returned when a request never produced an API
// response: connection failures, timeouts, an open circuit breaker, or a
// non-JSON reply from an intermediary. The underlying cause is wrapped, so
// errors.Is can still detect context.Canceled and friends.
var ErrTransportUnavailable = errors.New("transport unavailable - see log for details")

// ErrorType classifies an API error, mirroring the error envelope's type
// field.
type ErrorType string

const (
	// ErrorTypeValidationFailed means the request parameters failed
	// validation; the Errors slice names the offending fields.
	ErrorTypeValidationFailed ErrorType = "validation_failed"
	// ErrorTypeInvalidAPIUsage covers malformed requests, bad credentials
	// and unknown resources.
	ErrorTypeInvalidAPIUsage ErrorType = "invalid_api_usage"
	// ErrorTypeInvalidState means the requested action is not permitted for
	// the resource's current status, for example cancelling an already
	// cancelled mandate.
	ErrorTypeInvalidState ErrorType = "invalid_state"
	// ErrorTypeInternal is an error on the API's side.
	ErrorTypeInternal ErrorType = "driftpay"
)

const reasonIdempotentCreationConflict = "idempotent_creation_conflict"

// ValidationError is one entry of an APIError's Errors slice.
type ValidationError struct {
	Message        string            `json:"message"`
	Field          string            `json:"field,omitempty"`
	Reason         string            `json:"reason,omitempty"`
	RequestPointer string            `json:"request_pointer,omitempty"`
	Links          map[string]string `json:"links,omitempty"`
}

// APIError is the decoded error envelope of a failed API call.
type APIError struct {
	Message          string            `json:"message"`
	Type             ErrorType         `json:"type"`
	Code             int               `json:"code"`
	RequestID        string            `json:"request_id"`
	DocumentationURL string            `json:"documentation_url"`
	Errors           []ValidationError `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("driftpay: %s: %s (request id %s)", e.Type, e.Message, e.RequestID)
	}
	return fmt.Sprintf("driftpay: %s: %s", e.Type, e.Message)
}

// AsAPIError returns the *APIError in err's chain, or nil.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

func isErrorType(err error, t ErrorType) bool {
	if apiErr := AsAPIError(err); apiErr != nil {
		return apiErr.Type == t
	}
	return false
}

func IsValidationError(err error) bool {
	return isErrorType(err, ErrorTypeValidationFailed)
}

func IsInvalidAPIUsageError(err error) bool {
	return isErrorType(err, ErrorTypeInvalidAPIUsage)
}

func IsInvalidStateError(err error) bool {
	return isErrorType(err, ErrorTypeInvalidState)
}

func IsInternalError(err error) bool {
	return isErrorType(err, ErrorTypeInternal)
}

func IsNotFoundError(err error) bool {
	if apiErr := AsAPIError(err); apiErr != nil {
		return apiErr.Code == http.StatusNotFound
	}
	return false
}

// IsIdempotentCreationConflict reports whether err is the API telling us the
// idempotency key was already used for an earlier, successful creation.
func IsIdempotentCreationConflict(err error) bool {
	apiErr := AsAPIError(err)
	if apiErr == nil || apiErr.Code != http.StatusConflict {
		return false
	}
	for _, e := range apiErr.Errors {
		if e.Reason == reasonIdempotentCreationConflict {
			return true
		}
	}
	return false
}

// ConflictingResourceID returns the id of the resource created by the
// original request of an idempotent creation conflict, or "".
func ConflictingResourceID(err error) string {
	apiErr := AsAPIError(err)
	if apiErr == nil {
		return ""
	}
	for _, e := range apiErr.Errors {
		if e.Reason == reasonIdempotentCreationConflict {
			return e.Links["conflicting_resource_id"]
		}
	}
	return ""
}
