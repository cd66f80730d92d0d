package sale

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/skmgoldin/simple-token-sale/ledger"
)

// requireOwner asserts the caller is the current owner. Callers must hold
// the sale mutex.
func (s *Sale) requireOwner(caller ledger.Address) error {
	if caller != s.owner {
		return fmt.Errorf("%w: %s", ErrUnauthorized, caller)
	}
	return nil
}

// requireNotStarted asserts the sale window has not opened. Terms cannot
// change once the start block is reached. Callers must hold the sale
// mutex.
func (s *Sale) requireNotStarted() error {
	if s.clock.Height() >= s.startBlock {
		return ErrSaleAlreadyStarted
	}
	return nil
}

// ChangePrice sets a new unit price. Owner-only, and only before the
// sale window opens.
func (s *Sale) ChangePrice(caller ledger.Address, newPrice *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if err := s.requireNotStarted(); err != nil {
		return err
	}
	if newPrice == nil || newPrice.IsZero() {
		return ErrZeroPrice
	}
	s.price = new(uint256.Int).Set(newPrice)
	return nil
}

// ChangeStartBlock moves the start of the sale window. Owner-only, and
// only before the current window opens.
func (s *Sale) ChangeStartBlock(caller ledger.Address, newBlock uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if err := s.requireNotStarted(); err != nil {
		return err
	}
	if s.endBlock != 0 && s.endBlock < newBlock {
		return fmt.Errorf("%w: start=%d end=%d", ErrBadSaleWindow, newBlock, s.endBlock)
	}
	s.startBlock = newBlock
	return nil
}

// ChangeWallet redirects forwarded payments to a new wallet. Owner-only.
func (s *Sale) ChangeWallet(caller, newWallet ledger.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if newWallet.IsZero() {
		return fmt.Errorf("%w: wallet", ErrZeroAddress)
	}
	s.wallet = newWallet
	return nil
}

// ChangeOwner hands ownership to a new account. Owner-only.
func (s *Sale) ChangeOwner(caller, newOwner ledger.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return fmt.Errorf("%w: owner", ErrZeroAddress)
	}
	s.owner = newOwner
	return nil
}

// EmergencyToggle flips the emergency flag. Owner-only, allowed at any
// block height, and independent of every other sale term.
func (s *Sale) EmergencyToggle(caller ledger.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	s.emergency = !s.emergency
	return nil
}
