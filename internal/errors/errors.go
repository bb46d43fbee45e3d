package errors

import (
	"fmt"
)

type ErrorCode string

const (
	InvalidAmount          ErrorCode = "invalid_amount"
	InsufficientFunds      ErrorCode = "insufficient_funds"
	OverdraftExceeded      ErrorCode = "overdraft_exceeded"
	WithdrawalLimitReached ErrorCode = "withdrawal_limit_reached"
	UserNotFound           ErrorCode = "user_not_found"
	AccountNotFound        ErrorCode = "account_not_found"
	InvalidAccountType     ErrorCode = "invalid_account_type"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches by error code so errors.Is works against the predefined values
// even when details were attached to a derived error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetails returns a copy carrying extra context, leaving the receiver
// untouched so the predefined errors below stay constant.
func (e *AppError) WithDetails(details string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// Predefined errors for common cases
var (
	ErrInvalidAmount          = NewAppError(InvalidAmount, "amount must be positive")
	ErrInsufficientFunds      = NewAppError(InsufficientFunds, "insufficient funds")
	ErrOverdraftExceeded      = NewAppError(OverdraftExceeded, "exceeds available balance and overdraft limit")
	ErrWithdrawalLimitReached = NewAppError(WithdrawalLimitReached, "monthly withdrawal limit reached")
	ErrUserNotFound           = NewAppError(UserNotFound, "user not found")
	ErrAccountNotFound        = NewAppError(AccountNotFound, "account not found")
	ErrInvalidAccountType     = NewAppError(InvalidAccountType, "operation not supported for this account type")
)
