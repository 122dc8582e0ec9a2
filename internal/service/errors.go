package service

import "fmt"

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeValidation          = "validation_error"
	ErrCodeAmountRequired      = "amount_required"
	ErrCodeLinkInvalid         = "link_invalid"
	ErrCodeWalletNotFound      = "wallet_not_found"
	ErrCodeNotFound            = "not_found"
	ErrCodeSelfPayment         = "self_payment_rejected"
	ErrCodeInsufficientFunds   = "insufficient_funds"
	ErrCodeConflict            = "conflict"
	ErrCodeUpstreamUnavailable = "upstream_unavailable"
	ErrCodeSignatureInvalid    = "signature_invalid"
	ErrCodeInternalError       = "internal_error"
)

func internalError(op string, err error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeInternalError,
		Message: fmt.Sprintf("failed to %s", op),
		Err:     err,
	}
}
