package shipper

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// TransportError is a network or HTTP failure talking to a carrier. It is
// returned as is; nothing in this module retries it.
type TransportError struct {
	Carrier    string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s transport error (HTTP %d): %v", e.Carrier, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("%s transport error: %v", e.Carrier, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Condition is one structured rejection reason returned by a carrier.
type Condition struct {
	Code    string
	Message string
}

// CarrierRejectionError is a well-formed carrier response that reports one or
// more conditions instead of a result. Code and Message hold the first condition.
type CarrierRejectionError struct {
	Carrier    string
	Code       string
	Message    string
	Conditions []Condition
}

// NewCarrierRejectionError creates a rejection from the carrier's conditions.
func NewCarrierRejectionError(carrier string, conditions ...Condition) *CarrierRejectionError {
	e := &CarrierRejectionError{Carrier: carrier, Conditions: conditions}
	if len(conditions) > 0 {
		e.Code = conditions[0].Code
		e.Message = conditions[0].Message
	}
	return e
}

// Error implements the error interface.
func (e *CarrierRejectionError) Error() string {
	msg := fmt.Sprintf("%s rejected request (%s): %s", e.Carrier, e.Code, e.Message)
	if extra := len(e.Conditions) - 1; extra > 0 {
		msg += fmt.Sprintf(" (+%d more)", extra)
	}
	return msg
}

// Is matches another CarrierRejectionError with the same code.
func (e *CarrierRejectionError) Is(target error) bool {
	t, ok := target.(*CarrierRejectionError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// MalformedResponseError is a carrier response that yielded neither a result
// nor a recognizable condition. Body holds the raw response for diagnostics.
type MalformedResponseError struct {
	Carrier string
	Body    string
	Cause   error
}

const maxBodyInMessage = 512

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	body := e.Body
	if utf8.RuneCountInString(body) > maxBodyInMessage {
		body = string([]rune(body)[:maxBodyInMessage]) + "..."
	}
	body = strings.TrimSpace(body)
	if e.Cause != nil {
		return fmt.Sprintf("%s malformed response: %v: %s", e.Carrier, e.Cause, body)
	}
	return fmt.Sprintf("%s malformed response: %s", e.Carrier, body)
}

// Unwrap returns the underlying cause.
func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// Sentinel errors for common shipping scenarios.
var (
	// ErrInvalidShipment indicates a request that cannot be mapped at all
	// (nil, or without parcels).
	ErrInvalidShipment = errors.New("invalid shipment")

	// ErrCarrierNotFound indicates the requested carrier is not registered.
	ErrCarrierNotFound = errors.New("carrier not found")

	// ErrCancellationNotSupported describes carriers whose API has no
	// cancellation channel. It is reported through CancelResult.Message,
	// never returned.
	ErrCancellationNotSupported = errors.New("cancellation not supported")
)

// IsRetryable returns true if the error is a transport failure. Carrier
// rejections and malformed responses will fail the same way again.
func IsRetryable(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
