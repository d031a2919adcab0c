package lendbook

import "errors"

// Error kinds returned by the engine. Every operation validates against these
// before mutating anything, so a non-nil error always means the book is
// untouched.
var (
	// ErrInsufficientFunds means the settlement account cannot cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds on the settlement account")

	// ErrExceedsLiquidClaim means the person or loan side cannot cover the
	// amount: a return or contribution larger than what is owed to the person,
	// or a recovery larger than what the borrower still owes.
	ErrExceedsLiquidClaim = errors.New("amount exceeds the liquid claim")

	// ErrAllocationMismatch means contributor allocations do not sum to the
	// declared total.
	ErrAllocationMismatch = errors.New("allocations do not sum to the total")

	// ErrDuplicateName means an active investment already uses the name.
	ErrDuplicateName = errors.New("name already in use")

	// ErrTransactionNotFound means no transaction carries the given id.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrEntityNotFound means no person, loan or investment carries the given id.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrStructuralValidation means an imported snapshot is missing required
	// collections or is otherwise malformed.
	ErrStructuralValidation = errors.New("invalid snapshot structure")
)
