// Package schedule describes the token distribution fixed at sale
// construction: flat pre-buyer allocations and per-beneficiary vesting
// tranches. A schedule is plain validated data; it is read once when the
// sale is built and never consulted again.
package schedule

import (
	"time"

	"github.com/skmgoldin/simple-token-sale/ledger"
)

// PreBuyer is an account credited with tokens directly at construction,
// outside the public sale.
type PreBuyer struct {
	Address ledger.Address
	Amount  uint64
}

// Tranche is one chunk of a beneficiary's vested allocation. Amount
// unlocks at Date; if Period is non-zero it unlocks linearly between
// Date and Date+Period instead.
type Tranche struct {
	Amount uint64
	Date   time.Time
	Period time.Duration
}

// Beneficiary is a vesting recipient with one or more tranches.
type Beneficiary struct {
	Address  ledger.Address
	Tranches []Tranche
}

// Schedule is the full construction-time distribution plan.
type Schedule struct {
	PreBuyers     []PreBuyer
	Beneficiaries []Beneficiary
}

// TotalPreSold returns the sum of all pre-buyer allocations.
func (s *Schedule) TotalPreSold() uint64 {
	var sum uint64
	for _, pb := range s.PreBuyers {
		sum += pb.Amount
	}
	return sum
}

// TotalTimelocked returns the sum of all vesting tranche amounts.
func (s *Schedule) TotalTimelocked() uint64 {
	var sum uint64
	for _, b := range s.Beneficiaries {
		for _, t := range b.Tranches {
			sum += t.Amount
		}
	}
	return sum
}

// TotalAllocated returns the sum of all allocations drawn from the supply
// before the public sale.
func (s *Schedule) TotalAllocated() uint64 {
	return s.TotalPreSold() + s.TotalTimelocked()
}

// FromColumns builds a schedule of vesting tranches from parallel arrays,
// the flattened form deployment inputs commonly arrive in: one row per
// tranche, with the beneficiary address repeated for each of its tranches.
// Rows sharing an address are grouped into one beneficiary, preserving
// first-appearance order.
func FromColumns(beneficiaries []ledger.Address, amounts []uint64, dates []time.Time, periods []time.Duration) (*Schedule, error) {
	n := len(beneficiaries)
	if len(amounts) != n || len(dates) != n || len(periods) != n {
		return nil, ErrMismatchedInputLengths
	}

	sched := &Schedule{}
	index := make(map[ledger.Address]int, n)
	for i := 0; i < n; i++ {
		tranche := Tranche{Amount: amounts[i], Date: dates[i], Period: periods[i]}
		pos, seen := index[beneficiaries[i]]
		if !seen {
			pos = len(sched.Beneficiaries)
			index[beneficiaries[i]] = pos
			sched.Beneficiaries = append(sched.Beneficiaries, Beneficiary{Address: beneficiaries[i]})
		}
		sched.Beneficiaries[pos].Tranches = append(sched.Beneficiaries[pos].Tranches, tranche)
	}

	if err := sched.Validate(); err != nil {
		return nil, err
	}
	return sched, nil
}
