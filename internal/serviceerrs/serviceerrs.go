package serviceerrs

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrInsufficientBalance = errors.New("insufficient loyalty balance")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrAlreadyAwarded      = errors.New("loyalty points already awarded")
	ErrNothingToCharge     = errors.New("nothing to charge")
	ErrStorage             = errors.New("storage failure")
	// ErrContended is retryable: the row lock could not be taken in time.
	ErrContended = fmt.Errorf("%w: resource contended", ErrStorage)

	ErrTokenExpired             = errors.New("token expired")
	ErrSemaphoreTimeoutExceeded = errors.New("semaphore acquire timeout exceeded")
)

// StockError names the product that could not be fulfilled.
type StockError struct {
	ProductID int64
	Requested int64
	Available int64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}

// ContendedError carries a retry hint for the caller.
type ContendedError struct {
	Err        error
	RetryAfter time.Duration
}

func (e *ContendedError) Error() string {
	return fmt.Sprintf("contended, retry after %s: %v", e.RetryAfter, e.Err)
}

func (e *ContendedError) Unwrap() error {
	return ErrContended
}

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
