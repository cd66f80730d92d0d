package sale

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/skmgoldin/simple-token-sale/ledger"
)

// Config carries the validated construction parameters for a sale. It is
// plain typed data: reading and parsing configuration files is the
// deployer's concern, not the engine's.
type Config struct {
	// Owner is the only account allowed to call administrative operations.
	Owner ledger.Address

	// Wallet receives forwarded purchase payments.
	Wallet ledger.Address

	// TotalSupply is the fixed token supply, in token units.
	TotalSupply uint64

	// Price is the unit price in payment currency per token.
	Price *uint256.Int

	// StartBlock is the first block at which purchases are accepted.
	StartBlock uint64

	// EndBlock is the last block at which purchases are accepted.
	// Zero means the sale never closes by height.
	EndBlock uint64
}

// Validate checks the configuration and returns the first error
// encountered, or nil if valid.
func (c Config) Validate() error {
	if c.Owner.IsZero() {
		return fmt.Errorf("%w: owner", ErrZeroAddress)
	}
	if c.Wallet.IsZero() {
		return fmt.Errorf("%w: wallet", ErrZeroAddress)
	}
	if c.TotalSupply == 0 {
		return ErrZeroSupply
	}
	if c.Price == nil || c.Price.IsZero() {
		return ErrZeroPrice
	}
	if c.EndBlock != 0 && c.EndBlock < c.StartBlock {
		return fmt.Errorf("%w: start=%d end=%d", ErrBadSaleWindow, c.StartBlock, c.EndBlock)
	}
	return nil
}
