package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Unauthorized is returned for every failed admin check. Missing, malformed,
// expired and wrong-role tokens are deliberately indistinguishable.
var Unauthorized = &ApiErr{StatusCode: http.StatusUnauthorized, err: ErrUnauthorized}

// Request & Input-Validation Errors
var (
	ErrValidation           = errors.New("validation error")
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrUnknownField         = errors.New("unknown field")
	ErrMaxBodySizeExceeded  = errors.New("max body size exceeded")
	ErrInvalidPassword      = errors.New("Invalid password")
)

func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%w: %w", ErrValidation, ErrMalformedPayload),
		Details:    fmt.Sprintf("Malformed %s payload", payloadType),
		Cause:      cause,
		Field:      "payload",
	}
}

func NewMissingRequiredFieldError(fieldName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%w: %w", ErrValidation, ErrMissingRequiredField),
		Details:    fmt.Sprintf("Missing required field: %s", fieldName),
		Field:      fieldName,
	}
}

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%w: %w", ErrValidation, ErrInvalidField),
		Details:    fmt.Sprintf("Invalid field %s: %s", fieldName, reason),
		Field:      fieldName,
	}
}

func NewUnknownFieldError(fieldName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%w: %w", ErrValidation, ErrUnknownField),
		Details:    fmt.Sprintf("Unknown field: %s", fieldName),
		Field:      fieldName,
	}
}

func NewMaxBodySizeExceededError(maxSize int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusRequestEntityTooLarge,
		err:        ErrMaxBodySizeExceeded,
		Details:    fmt.Sprintf("Request body size exceeded maximum allowed size of %d bytes", maxSize),
		Field:      "body_size",
	}
}

func NewInvalidPasswordError() *ApiErr {
	return &ApiErr{StatusCode: http.StatusUnauthorized, err: ErrInvalidPassword}
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsMissingRequiredFieldError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

func IsInvalidFieldError(err error) bool {
	return errors.Is(err, ErrInvalidField)
}

func IsUnknownFieldError(err error) bool {
	return errors.Is(err, ErrUnknownField)
}

func IsInvalidPasswordError(err error) bool {
	return errors.Is(err, ErrInvalidPassword)
}
