package ledger

import (
	"errors"
)

// ErrGeneral is returned for storage failures that the caller cannot do
// anything about. The underlying error is logged, not surfaced.
var ErrGeneral = errors.New("an error occurred on the server during your request")

// Not-found errors
var (
	ErrEnvelopeNotFound    = errors.New("there is no envelope matching your query")
	ErrTransactionNotFound = errors.New("there is no transaction matching your query")
)

// ErrInsufficientFunds is returned when an operation would drive an
// envelope balance negative.
var ErrInsufficientFunds = errors.New("the envelope does not hold enough money for this operation")

// Validation errors. These are returned before any storage mutation is
// attempted.
var (
	ErrNameEmpty         = errors.New("the envelope name must not be empty")
	ErrAmountNegative    = errors.New("the amount must not be negative")
	ErrAmountNotPositive = errors.New("the amount must be a positive number")
	ErrRecipientEmpty    = errors.New("the recipient must not be empty")
	ErrEnvelopeIDMissing = errors.New("the envelope ID must be set")
)
