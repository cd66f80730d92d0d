package sale

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/skmgoldin/simple-token-sale/journal"
	"github.com/skmgoldin/simple-token-sale/ledger"
)

// PurchaseTokens buys tokens for buyer with the given payment. The
// quantity is payment / price; the remainder is refunded to the buyer
// and only quantity * price is forwarded to the wallet. Returns the
// quantity purchased.
//
// Preconditions, checked before any state change: the emergency flag is
// clear, the current height is inside the sale window, the payment buys
// at least one token, and the quantity does not exceed the remaining
// inventory.
func (s *Sale) PurchaseTokens(buyer ledger.Address, payment *uint256.Int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if buyer.IsZero() {
		return 0, fmt.Errorf("%w: buyer", ErrZeroAddress)
	}
	if s.emergency {
		return 0, ErrEmergencyStopped
	}
	height := s.clock.Height()
	if height < s.startBlock {
		return 0, fmt.Errorf("%w: block %d, sale starts at %d", ErrSaleNotActive, height, s.startBlock)
	}
	if s.endBlock != 0 && height > s.endBlock {
		return 0, fmt.Errorf("%w: block %d, sale ended at %d", ErrSaleNotActive, height, s.endBlock)
	}
	if payment == nil || payment.IsZero() {
		return 0, ErrInvalidPayment
	}

	quantity, remainder := new(uint256.Int).DivMod(payment, s.price, new(uint256.Int))
	if quantity.IsZero() {
		return 0, ErrInvalidPayment
	}
	remaining := s.token.BalanceOf(s.account)
	if !quantity.IsUint64() || quantity.Uint64() > remaining {
		return 0, fmt.Errorf("%w: %s requested, %d remaining", ErrInsufficientInventory, quantity, remaining)
	}
	qty := quantity.Uint64()
	spent := new(uint256.Int).Sub(payment, remainder)

	// Payment settles first, in one sink call: a failure aborts the
	// purchase before the token ledger is touched, with no partial leg.
	if err := s.payments.Settle(s.wallet, spent, buyer, remainder); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	if err := s.token.Transfer(s.account, buyer, qty); err != nil {
		return 0, err
	}

	s.record(journal.Event{
		Kind:        journal.KindPurchase,
		Beneficiary: buyer,
		Amount:      qty,
		Payment:     spent.Dec(),
		Block:       height,
		Time:        s.clock.Now().Unix(),
	})
	return qty, nil
}
