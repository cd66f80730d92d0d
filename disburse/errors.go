package disburse

import "errors"

var (
	// ErrUnauthorized indicates the caller is not the unit's beneficiary.
	ErrUnauthorized = errors.New("disburse: caller is not the beneficiary")

	// ErrNotYetVested indicates a withdrawal before the vesting date.
	ErrNotYetVested = errors.New("disburse: tokens are not yet vested")

	// ErrNothingToWithdraw indicates the unit has been fully released.
	ErrNothingToWithdraw = errors.New("disburse: nothing left to withdraw")

	// ErrExceedsVested indicates a withdrawal larger than the unlocked,
	// not-yet-withdrawn amount.
	ErrExceedsVested = errors.New("disburse: amount exceeds vested balance")

	// ErrZeroWithdraw indicates a withdrawal of zero tokens.
	ErrZeroWithdraw = errors.New("disburse: zero withdrawal amount")
)
