package sale

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/skmgoldin/simple-token-sale/ledger"
)

// PaymentSink is the external payable-transfer collaborator. The engine
// hands it one settlement per purchase, so the sink owns payment
// atomicity: either both legs happen or neither does. The engine calls
// it before mutating the token ledger, so a sink failure aborts the
// purchase with no state change.
type PaymentSink interface {
	// Settle forwards the spent payment to the wallet and returns the
	// remainder, which may be zero, to the buyer.
	Settle(wallet ledger.Address, spent *uint256.Int, buyer ledger.Address, remainder *uint256.Int) error
}

// MemSink is an in-memory PaymentSink that accumulates amounts per
// account, for tests and simulations.
type MemSink struct {
	mu       sync.Mutex
	received map[ledger.Address]*uint256.Int
}

// Compile-time interface check.
var _ PaymentSink = (*MemSink)(nil)

// NewMemSink creates an empty MemSink.
func NewMemSink() *MemSink {
	return &MemSink{received: make(map[ledger.Address]*uint256.Int)}
}

func (s *MemSink) credit(to ledger.Address, amount *uint256.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.received[to]
	if !ok {
		cur = new(uint256.Int)
		s.received[to] = cur
	}
	cur.Add(cur, amount)
}

// Settle credits the wallet with the spent amount and the buyer with the
// remainder.
func (s *MemSink) Settle(wallet ledger.Address, spent *uint256.Int, buyer ledger.Address, remainder *uint256.Int) error {
	s.credit(wallet, spent)
	if !remainder.IsZero() {
		s.credit(buyer, remainder)
	}
	return nil
}

// Received returns the cumulative amount credited to an account.
func (s *MemSink) Received(a ledger.Address) *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.received[a]
	if !ok {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(cur)
}
