package schedule

import "errors"

var (
	// ErrMismatchedInputLengths indicates the parallel column arrays of
	// beneficiaries, amounts, dates and periods are not all the same length.
	ErrMismatchedInputLengths = errors.New("schedule: mismatched input lengths")

	// ErrZeroAddress indicates an allocation names the zero address.
	ErrZeroAddress = errors.New("schedule: zero address")

	// ErrZeroAllocation indicates an allocation of zero tokens.
	ErrZeroAllocation = errors.New("schedule: zero token allocation")

	// ErrDuplicatePreBuyer indicates the same address appears twice in the
	// pre-buyer list.
	ErrDuplicatePreBuyer = errors.New("schedule: duplicate pre-buyer address")

	// ErrDuplicateBeneficiary indicates the same address appears twice in
	// the beneficiary list. Each beneficiary carries its full tranche list
	// in one entry; a repeated address would fund colliding unit accounts.
	ErrDuplicateBeneficiary = errors.New("schedule: duplicate beneficiary address")

	// ErrNoTranches indicates a vesting beneficiary with an empty tranche list.
	ErrNoTranches = errors.New("schedule: beneficiary has no tranches")

	// ErrNegativePeriod indicates a tranche with a negative vesting period.
	ErrNegativePeriod = errors.New("schedule: negative vesting period")

	// ErrAllocationOverflow indicates the summed allocations overflow uint64.
	ErrAllocationOverflow = errors.New("schedule: allocation total overflows")
)
