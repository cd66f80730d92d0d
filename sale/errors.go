package sale

import "errors"

var (
	// ErrUnauthorized indicates the caller is not the current owner.
	ErrUnauthorized = errors.New("sale: caller is not the owner")

	// ErrSaleNotActive indicates a purchase outside the sale block window.
	ErrSaleNotActive = errors.New("sale: outside the sale block window")

	// ErrEmergencyStopped indicates purchases are suspended by the
	// emergency flag.
	ErrEmergencyStopped = errors.New("sale: emergency stop is active")

	// ErrSaleAlreadyStarted indicates a term change after the sale window
	// opened.
	ErrSaleAlreadyStarted = errors.New("sale: sale has already started")

	// ErrInvalidPayment indicates the payment buys less than one token.
	ErrInvalidPayment = errors.New("sale: payment buys no tokens")

	// ErrInsufficientInventory indicates the requested quantity exceeds the
	// remaining sale balance.
	ErrInsufficientInventory = errors.New("sale: insufficient inventory")

	// ErrOversubscribed indicates the schedule allocates more tokens than
	// the total supply.
	ErrOversubscribed = errors.New("sale: allocations exceed total supply")

	// ErrZeroAddress indicates the zero address was used where a real
	// account is required.
	ErrZeroAddress = errors.New("sale: zero address")

	// ErrZeroPrice indicates a zero unit price.
	ErrZeroPrice = errors.New("sale: price must be greater than zero")

	// ErrZeroSupply indicates a zero total supply.
	ErrZeroSupply = errors.New("sale: total supply must be greater than zero")

	// ErrBadSaleWindow indicates an end block before the start block.
	ErrBadSaleWindow = errors.New("sale: end block precedes start block")

	// ErrPaymentFailed indicates the payment collaborator rejected a
	// transfer; no sale state was changed.
	ErrPaymentFailed = errors.New("sale: payment transfer failed")
)
