// Package sale implements the token-sale engine: a fixed supply
// distributed at construction to pre-buyers and time-locked disbursement
// units, with the residual sold publicly inside a block-height window at
// a fixed unit price. Administrative operations are gated to a single
// owner, and an emergency flag suspends purchasing without altering any
// other term.
package sale

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/skmgoldin/simple-token-sale/chain"
	"github.com/skmgoldin/simple-token-sale/disburse"
	"github.com/skmgoldin/simple-token-sale/journal"
	"github.com/skmgoldin/simple-token-sale/ledger"
	"github.com/skmgoldin/simple-token-sale/schedule"
)

// Sale is the sale engine state machine. All operations are atomic:
// every precondition is checked before the first mutation, and a failed
// operation leaves every balance and flag untouched.
type Sale struct {
	mu sync.Mutex

	owner      ledger.Address
	wallet     ledger.Address
	price      *uint256.Int
	startBlock uint64
	endBlock   uint64 // 0 = open-ended
	emergency  bool

	account  ledger.Address
	token    *ledger.Ledger
	clock    chain.Clock
	payments PaymentSink
	sink     journal.Sink // may be nil
	units    *disburse.Registry
}

// saleAccount is the ledger account holding unsold public-sale inventory.
// Each sale owns its own ledger, so the tag needs no per-sale salt.
var saleAccount = func() ledger.Address {
	sum := sha256.Sum256([]byte("sale:inventory"))
	var a ledger.Address
	copy(a[:], sum[:ledger.AddressSize])
	return a
}()

// New constructs a sale: it creates the token ledger with the full supply,
// credits pre-buyers, funds one disbursement unit per vesting tranche, and
// leaves the residual with the sale's own account as public inventory.
// Distribution events are recorded to sink so external tooling can map
// units to beneficiaries and tranches.
func New(cfg Config, sched *schedule.Schedule, clock chain.Clock, payments PaymentSink, sink journal.Sink) (*Sale, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sched == nil {
		sched = &schedule.Schedule{}
	}
	if err := sched.Validate(); err != nil {
		return nil, err
	}
	if alloc := sched.TotalAllocated(); alloc > cfg.TotalSupply {
		return nil, fmt.Errorf("%w: allocated %d of %d", ErrOversubscribed, alloc, cfg.TotalSupply)
	}

	token, err := ledger.New(cfg.TotalSupply, saleAccount)
	if err != nil {
		return nil, err
	}

	s := &Sale{
		owner:      cfg.Owner,
		wallet:     cfg.Wallet,
		price:      new(uint256.Int).Set(cfg.Price),
		startBlock: cfg.StartBlock,
		endBlock:   cfg.EndBlock,
		account:    saleAccount,
		token:      token,
		clock:      clock,
		payments:   payments,
		sink:       sink,
		units:      disburse.NewRegistry(),
	}

	block := clock.Height()
	now := clock.Now().Unix()

	for _, pb := range sched.PreBuyers {
		if err := token.Transfer(s.account, pb.Address, pb.Amount); err != nil {
			return nil, err
		}
		s.record(journal.Event{
			Kind:        journal.KindPreBuyerCredit,
			Beneficiary: pb.Address,
			Amount:      pb.Amount,
			Block:       block,
			Time:        now,
		})
	}

	for _, b := range sched.Beneficiaries {
		for i, t := range b.Tranches {
			account := disburse.UnitAccount(b.Address, i)
			if err := token.Transfer(s.account, account, t.Amount); err != nil {
				return nil, err
			}
			s.units.Add(disburse.NewUnit(token, clock, sink, account, b.Address, t.Amount, t.Date, t.Period))
			s.record(journal.Event{
				Kind:        journal.KindUnitFunded,
				Beneficiary: b.Address,
				Unit:        account,
				Amount:      t.Amount,
				Block:       block,
				Time:        now,
			})
		}
	}

	return s, nil
}

func (s *Sale) record(e journal.Event) {
	if s.sink != nil {
		s.sink.Record(e)
	}
}

// Owner returns the current owner.
func (s *Sale) Owner() ledger.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

// Wallet returns the payment destination account.
func (s *Sale) Wallet() ledger.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wallet
}

// Price returns a copy of the current unit price.
func (s *Sale) Price() *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return new(uint256.Int).Set(s.price)
}

// StartBlock returns the first block of the sale window.
func (s *Sale) StartBlock() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startBlock
}

// EndBlock returns the last block of the sale window, or zero if the
// sale is open-ended.
func (s *Sale) EndBlock() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endBlock
}

// EmergencyFlag reports whether purchases are suspended.
func (s *Sale) EmergencyFlag() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emergency
}

// Account returns the sale's own ledger account.
func (s *Sale) Account() ledger.Address {
	return s.account
}

// Token returns the underlying token ledger.
func (s *Sale) Token() *ledger.Ledger {
	return s.token
}

// Units returns the disbursement unit registry.
func (s *Sale) Units() *disburse.Registry {
	return s.units
}

// Remaining returns the unsold public-sale inventory.
func (s *Sale) Remaining() uint64 {
	return s.token.BalanceOf(s.account)
}
