// Package ledger implements the closed token ledger backing the sale
// engine and disbursement units: named-account balances with a fixed
// total supply. Tokens can move between accounts but are never minted or
// burned after construction.
package ledger

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
)

// AddressSize is the length of an account address in bytes.
const AddressSize = 20

// Address identifies an account in the ledger.
type Address [AddressSize]byte

// String returns the 0x-prefixed hex encoding of the address.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// IsZero reports whether the address is the zero address.
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalText implements encoding.TextMarshaler using the 0x-hex form.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress parses a 0x-prefixed 40-character hex address string.
func ParseAddress(s string) (Address, error) {
	var a Address
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(b) != AddressSize {
		return a, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidAddress, AddressSize, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// Ledger holds account balances for a fixed token supply. All methods are
// safe for concurrent use, though the engine drives operations serially.
type Ledger struct {
	mu       sync.Mutex
	balances map[Address]uint64
	supply   uint64
}

// New creates a ledger with totalSupply tokens credited to holder.
func New(totalSupply uint64, holder Address) (*Ledger, error) {
	if totalSupply == 0 {
		return nil, ErrZeroSupply
	}
	if holder.IsZero() {
		return nil, fmt.Errorf("%w: initial holder", ErrZeroAddress)
	}
	return &Ledger{
		balances: map[Address]uint64{holder: totalSupply},
		supply:   totalSupply,
	}, nil
}

// Transfer moves amount tokens from one account to another. The transfer
// either fully commits or fails with no balance change.
func (l *Ledger) Transfer(from, to Address, amount uint64) error {
	if from.IsZero() {
		return fmt.Errorf("%w: from", ErrZeroAddress)
	}
	if to.IsZero() {
		return fmt.Errorf("%w: to", ErrZeroAddress)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balances[from] < amount {
		return fmt.Errorf("%w: account %s holds %d, needs %d",
			ErrInsufficientBalance, from, l.balances[from], amount)
	}

	// Credits cannot overflow: every balance is bounded by the fixed supply.
	l.balances[from] -= amount
	l.balances[to] += amount
	if l.balances[from] == 0 {
		delete(l.balances, from)
	}
	return nil
}

// BalanceOf returns the balance of an account. Unknown accounts hold zero.
func (l *Ledger) BalanceOf(a Address) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[a]
}

// TotalSupply returns the fixed total supply.
func (l *Ledger) TotalSupply() uint64 {
	return l.supply
}

// Balances returns a copy of all non-zero account balances.
func (l *Ledger) Balances() map[Address]uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[Address]uint64, len(l.balances))
	for a, b := range l.balances {
		out[a] = b
	}
	return out
}

// AuditSupply verifies that the sum of all balances equals the total
// supply, failing with ErrSupplyMismatch if conservation is violated.
func (l *Ledger) AuditSupply() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sum uint64
	for _, b := range l.balances {
		sum += b
	}
	if sum != l.supply {
		return fmt.Errorf("%w: sum=%d supply=%d", ErrSupplyMismatch, sum, l.supply)
	}
	return nil
}
