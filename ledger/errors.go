package ledger

import "errors"

var (
	// ErrZeroSupply indicates the ledger was constructed with no tokens.
	ErrZeroSupply = errors.New("ledger: total supply must be greater than zero")

	// ErrZeroAddress indicates the zero address was used where a real
	// account is required.
	ErrZeroAddress = errors.New("ledger: zero address")

	// ErrInvalidAddress indicates an address string could not be parsed.
	ErrInvalidAddress = errors.New("ledger: invalid address")

	// ErrInsufficientBalance indicates the debited account does not hold
	// enough tokens to cover the transfer.
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")

	// ErrSupplyMismatch indicates the sum of all balances no longer equals
	// the total supply.
	ErrSupplyMismatch = errors.New("ledger: balance sum does not equal total supply")
)
