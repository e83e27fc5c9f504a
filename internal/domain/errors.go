package domain

import "errors"

var (
	// ErrInvalidTransition is returned when an action is attempted against a
	// canonical status that does not satisfy its guard. Never retried.
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrValidation is returned for malformed input. Nothing is persisted.
	ErrValidation = errors.New("validation failed")

	// ErrConcurrencyConflict is returned when an optimistic version check fails
	// on write. The caller must re-read and retry the whole action.
	ErrConcurrencyConflict = errors.New("booking was modified concurrently")

	// ErrAlreadySettled is returned when settlement is invoked a second time.
	ErrAlreadySettled = errors.New("settlement already processed")

	// ErrAmountOutOfRange is returned when a penalty exceeds the vendor's base
	// settlement share.
	ErrAmountOutOfRange = errors.New("amount out of permitted range")

	// ErrBookingClosed is returned when an action arrives after the booking
	// reached a terminal status.
	ErrBookingClosed = errors.New("booking is closed")

	ErrNotFound = errors.New("booking not found")

	ErrUnauthorized = errors.New("actor not permitted for this action")
)
