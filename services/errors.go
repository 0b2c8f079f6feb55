package services

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when an owner already holds the
	// maximum number of payee accounts.
	ErrCapacityExceeded = errors.New("maximum limit reached, you can add up to 5 payment methods only")

	// ErrNotFound covers missing accounts, requests and transactions.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyTerminal is returned when pay or decline is re-invoked on a
	// request that is already paid or declined. It is an error rather than a
	// no-op so callers can detect a double submission.
	ErrAlreadyTerminal = errors.New("payment request already finalized")

	// ErrNoPayeeAccount gates pricing and payment on having a payable account.
	ErrNoPayeeAccount = errors.New("at least one payment account is required")

	// ErrInvalidState is returned for illegal ledger status transitions.
	ErrInvalidState = errors.New("transaction is not in a refundable state")

	// ErrNoMatchingTransaction is returned when a cancelled appointment has
	// no completed payment to refund against.
	ErrNoMatchingTransaction = errors.New("no completed transaction found for appointment")

	// ErrInsufficientBalance is returned for wallet-funded payments that
	// would push the balance below zero.
	ErrInsufficientBalance = errors.New("insufficient balance in wallet")
)

// ValidationError reports the first field that failed validation, mirroring
// per-field form errors in the client.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// PartialFailureError marks a post-commit side effect (mail, event push) that
// failed after the ledger state was already durable. The financial state is
// consistent; only the notification needs retrying.
type PartialFailureError struct {
	Step string
	Err  error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("partial failure at %s: %v", e.Step, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
