package disburse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skmgoldin/simple-token-sale/chain"
	"github.com/skmgoldin/simple-token-sale/journal"
	"github.com/skmgoldin/simple-token-sale/ledger"
)

func makeAddr(seed byte) ledger.Address {
	var a ledger.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

// fundedUnit creates a ledger, funds a unit account with amount tokens
// and returns the unit.
func fundedUnit(t *testing.T, clock chain.Clock, sink journal.Sink,
	beneficiary ledger.Address, amount uint64, date time.Time, period time.Duration) (*Unit, *ledger.Ledger) {
	t.Helper()
	treasury := makeAddr(0xFF)
	token, err := ledger.New(amount, treasury)
	require.NoError(t, err)

	account := UnitAccount(beneficiary, 0)
	require.NoError(t, token.Transfer(treasury, account, amount))
	return NewUnit(token, clock, sink, account, beneficiary, amount, date, period), token
}

func TestUnitAccount_Deterministic(t *testing.T) {
	b := makeAddr(0x01)
	assert.Equal(t, UnitAccount(b, 0), UnitAccount(b, 0))
	assert.NotEqual(t, UnitAccount(b, 0), UnitAccount(b, 1))
	assert.NotEqual(t, UnitAccount(b, 0), UnitAccount(makeAddr(0x02), 0))
	assert.False(t, UnitAccount(b, 0).IsZero())
}

func TestCalcMaxWithdraw_BeforeVestingDate(t *testing.T) {
	date := time.Unix(10_000, 0)
	clock := chain.NewSimClock(0, date.Add(-time.Second))
	u, _ := fundedUnit(t, clock, nil, makeAddr(0x01), 50, date, 0)

	assert.Equal(t, uint64(0), u.CalcMaxWithdraw())
}

func TestCalcMaxWithdraw_CliffAtDate(t *testing.T) {
	date := time.Unix(10_000, 0)
	clock := chain.NewSimClock(0, date)
	u, _ := fundedUnit(t, clock, nil, makeAddr(0x01), 50, date, 0)

	// The full tranche unlocks exactly at the vesting date.
	assert.Equal(t, uint64(50), u.CalcMaxWithdraw())
}

func TestCalcMaxWithdraw_LinearPeriod(t *testing.T) {
	date := time.Unix(10_000, 0)
	period := 100 * time.Second
	clock := chain.NewSimClock(0, date)
	u, _ := fundedUnit(t, clock, nil, makeAddr(0x01), 1000, date, period)

	assert.Equal(t, uint64(0), u.CalcMaxWithdraw())

	clock.Advance(25 * time.Second)
	assert.Equal(t, uint64(250), u.CalcMaxWithdraw())

	clock.Advance(50 * time.Second)
	assert.Equal(t, uint64(750), u.CalcMaxWithdraw())

	// Capped at the full allocation once the period elapses.
	clock.Advance(time.Hour)
	assert.Equal(t, uint64(1000), u.CalcMaxWithdraw())
}

func TestWithdraw_Lifecycle(t *testing.T) {
	beneficiary := makeAddr(0x01)
	date := time.Unix(10_000, 0)
	clock := chain.NewSimClock(0, date.Add(-time.Hour))
	rec := journal.NewRecorder()
	u, token := fundedUnit(t, clock, rec, beneficiary, 50, date, 0)

	// Locked: withdrawal fails, balances unchanged.
	err := u.Withdraw(beneficiary, 50)
	assert.ErrorIs(t, err, ErrNotYetVested)
	assert.Equal(t, uint64(0), token.BalanceOf(beneficiary))
	assert.Equal(t, uint64(50), token.BalanceOf(u.Account()))

	// Claimable: full withdrawal succeeds.
	clock.AdvanceTo(date)
	require.NoError(t, u.Withdraw(beneficiary, 50))
	assert.Equal(t, uint64(50), token.BalanceOf(beneficiary))
	assert.Equal(t, uint64(0), token.BalanceOf(u.Account()))
	assert.Equal(t, uint64(0), u.Remaining())

	// Released: a repeat withdrawal fails.
	err = u.Withdraw(beneficiary, 1)
	assert.ErrorIs(t, err, ErrNothingToWithdraw)

	// The withdrawal was journaled.
	events := rec.ByKind(journal.KindWithdrawal)
	require.Len(t, events, 1)
	assert.Equal(t, beneficiary, events[0].Beneficiary)
	assert.Equal(t, u.Account(), events[0].Unit)
	assert.Equal(t, uint64(50), events[0].Amount)
}

func TestWithdraw_Unauthorized(t *testing.T) {
	beneficiary := makeAddr(0x01)
	date := time.Unix(10_000, 0)
	clock := chain.NewSimClock(0, date)
	u, token := fundedUnit(t, clock, nil, beneficiary, 50, date, 0)

	err := u.Withdraw(makeAddr(0x02), 50)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, uint64(50), token.BalanceOf(u.Account()))
}

func TestWithdraw_ExceedsVested(t *testing.T) {
	beneficiary := makeAddr(0x01)
	date := time.Unix(10_000, 0)
	period := 100 * time.Second
	clock := chain.NewSimClock(0, date.Add(50*time.Second))
	u, token := fundedUnit(t, clock, nil, beneficiary, 1000, date, period)

	// Half the period elapsed: 500 unlocked.
	err := u.Withdraw(beneficiary, 501)
	assert.ErrorIs(t, err, ErrExceedsVested)
	assert.Equal(t, uint64(1000), token.BalanceOf(u.Account()))

	require.NoError(t, u.Withdraw(beneficiary, 500))
	assert.Equal(t, uint64(500), token.BalanceOf(beneficiary))

	// Nothing more unlocks until time advances.
	assert.Equal(t, uint64(0), u.CalcMaxWithdraw())
	err = u.Withdraw(beneficiary, 1)
	assert.ErrorIs(t, err, ErrExceedsVested)

	clock.Advance(50 * time.Second)
	require.NoError(t, u.Withdraw(beneficiary, 500))
	assert.Equal(t, uint64(1000), token.BalanceOf(beneficiary))
	assert.Equal(t, uint64(0), u.Remaining())
}

func TestWithdraw_ZeroAmount(t *testing.T) {
	beneficiary := makeAddr(0x01)
	date := time.Unix(10_000, 0)
	clock := chain.NewSimClock(0, date)
	u, _ := fundedUnit(t, clock, nil, beneficiary, 50, date, 0)

	assert.ErrorIs(t, u.Withdraw(beneficiary, 0), ErrZeroWithdraw)
}

func TestWithdraw_PartialThenRest(t *testing.T) {
	beneficiary := makeAddr(0x01)
	date := time.Unix(10_000, 0)
	clock := chain.NewSimClock(0, date)
	u, token := fundedUnit(t, clock, nil, beneficiary, 50, date, 0)

	require.NoError(t, u.Withdraw(beneficiary, 20))
	assert.Equal(t, uint64(30), u.CalcMaxWithdraw())
	assert.Equal(t, uint64(30), u.Remaining())

	require.NoError(t, u.Withdraw(beneficiary, 30))
	assert.Equal(t, uint64(50), token.BalanceOf(beneficiary))
	assert.ErrorIs(t, u.Withdraw(beneficiary, 1), ErrNothingToWithdraw)
}

func TestRegistry(t *testing.T) {
	date := time.Unix(10_000, 0)
	clock := chain.NewSimClock(0, date)
	b1, b2 := makeAddr(0x01), makeAddr(0x02)

	treasury := makeAddr(0xFF)
	token, err := ledger.New(1000, treasury)
	require.NoError(t, err)

	r := NewRegistry()
	for i, amount := range []uint64{50, 75} {
		account := UnitAccount(b1, i)
		require.NoError(t, token.Transfer(treasury, account, amount))
		r.Add(NewUnit(token, clock, nil, account, b1, amount, date, 0))
	}
	account := UnitAccount(b2, 0)
	require.NoError(t, token.Transfer(treasury, account, 25))
	r.Add(NewUnit(token, clock, nil, account, b2, 25, date, 0))

	assert.Equal(t, 3, r.Len())
	assert.Len(t, r.All(), 3)
	assert.Equal(t, uint64(150), r.TotalRemaining())

	units := r.UnitsFor(b1)
	require.Len(t, units, 2)
	assert.Equal(t, uint64(50), units[0].Amount())
	assert.Equal(t, uint64(75), units[1].Amount())
	assert.Empty(t, r.UnitsFor(makeAddr(0x03)))

	require.NoError(t, units[0].Withdraw(b1, 50))
	assert.Equal(t, uint64(100), r.TotalRemaining())
}
