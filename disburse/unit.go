// Package disburse implements time-locked disbursement units: isolated
// balance holders that release tokens to exactly one beneficiary no
// earlier than a configured vesting date, optionally linearly over a
// vesting period. One unit is created per tranche at sale construction.
package disburse

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/skmgoldin/simple-token-sale/chain"
	"github.com/skmgoldin/simple-token-sale/journal"
	"github.com/skmgoldin/simple-token-sale/ledger"
)

// UnitAccount derives the ledger account for a beneficiary's tranche.
// Accounts are deterministic so the same schedule always funds the same
// addresses.
func UnitAccount(beneficiary ledger.Address, tranche int) ledger.Address {
	h := sha256.New()
	h.Write([]byte("disburse:unit"))
	h.Write(beneficiary[:])
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], uint32(tranche))
	h.Write(idx[:])

	var a ledger.Address
	copy(a[:], h.Sum(nil)[:ledger.AddressSize])
	return a
}

// Unit owns one tranche's tokens in the ledger and releases them to its
// beneficiary. A unit is locked before the vesting date, claimable at or
// after it, and released once its balance is exhausted. The cumulative amount
// released never exceeds the initially funded amount.
type Unit struct {
	token *ledger.Ledger
	clock chain.Clock
	sink  journal.Sink // may be nil

	account     ledger.Address
	beneficiary ledger.Address
	amount      uint64
	date        time.Time
	period      time.Duration // 0 = cliff: the full amount unlocks at date
	withdrawn   uint64
}

// NewUnit creates a unit over an already-funded ledger account. The
// caller is responsible for having transferred amount tokens to account.
func NewUnit(token *ledger.Ledger, clock chain.Clock, sink journal.Sink,
	account, beneficiary ledger.Address, amount uint64, date time.Time, period time.Duration) *Unit {
	return &Unit{
		token:       token,
		clock:       clock,
		sink:        sink,
		account:     account,
		beneficiary: beneficiary,
		amount:      amount,
		date:        date,
		period:      period,
	}
}

// Account returns the unit's ledger account.
func (u *Unit) Account() ledger.Address { return u.account }

// Beneficiary returns the only address allowed to withdraw.
func (u *Unit) Beneficiary() ledger.Address { return u.beneficiary }

// Amount returns the initially funded token amount.
func (u *Unit) Amount() uint64 { return u.amount }

// Withdrawn returns the cumulative amount released so far.
func (u *Unit) Withdrawn() uint64 { return u.withdrawn }

// Remaining returns the tokens still held by the unit.
func (u *Unit) Remaining() uint64 { return u.amount - u.withdrawn }

// Date returns the vesting date.
func (u *Unit) Date() time.Time { return u.date }

// Period returns the linear vesting period, or zero for a cliff tranche.
func (u *Unit) Period() time.Duration { return u.period }

// CalcMaxWithdraw returns the amount currently available to withdraw:
// zero before the vesting date; for cliff tranches the full unreleased
// amount at or after it; for periodic tranches the unreleased share of
// amount * elapsed / period, capped at the full amount.
func (u *Unit) CalcMaxWithdraw() uint64 {
	now := u.clock.Now()
	if now.Before(u.date) {
		return 0
	}

	unlocked := u.amount
	if u.period > 0 {
		if elapsed := now.Sub(u.date); elapsed < u.period {
			// amount * elapsed overflows uint64 for large allocations, so
			// the proration runs in 256-bit space.
			v := new(uint256.Int).Mul(
				uint256.NewInt(u.amount),
				uint256.NewInt(uint64(elapsed)),
			)
			v.Div(v, uint256.NewInt(uint64(u.period)))
			unlocked = v.Uint64()
		}
	}

	if unlocked <= u.withdrawn {
		return 0
	}
	return unlocked - u.withdrawn
}

// Withdraw releases amount tokens to the beneficiary. Only the
// beneficiary may call it, the amount must not exceed CalcMaxWithdraw,
// and a failed withdrawal leaves all balances unchanged.
func (u *Unit) Withdraw(caller ledger.Address, amount uint64) error {
	if caller != u.beneficiary {
		return fmt.Errorf("%w: %s", ErrUnauthorized, caller)
	}
	if amount == 0 {
		return ErrZeroWithdraw
	}
	if u.clock.Now().Before(u.date) {
		return ErrNotYetVested
	}
	if u.Remaining() == 0 {
		return ErrNothingToWithdraw
	}
	if max := u.CalcMaxWithdraw(); amount > max {
		return fmt.Errorf("%w: %d available, %d requested", ErrExceedsVested, max, amount)
	}

	if err := u.token.Transfer(u.account, u.beneficiary, amount); err != nil {
		return err
	}
	u.withdrawn += amount

	if u.sink != nil {
		u.sink.Record(journal.Event{
			Kind:        journal.KindWithdrawal,
			Beneficiary: u.beneficiary,
			Unit:        u.account,
			Amount:      amount,
			Block:       u.clock.Height(),
			Time:        u.clock.Now().Unix(),
		})
	}
	return nil
}
