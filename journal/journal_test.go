package journal

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skmgoldin/simple-token-sale/ledger"
)

func makeAddr(seed byte) ledger.Address {
	var a ledger.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	b1, b2 := makeAddr(0x01), makeAddr(0x02)

	r.Record(Event{Kind: KindPreBuyerCredit, Beneficiary: b1, Amount: 100})
	r.Record(Event{Kind: KindUnitFunded, Beneficiary: b2, Unit: makeAddr(0xAA), Amount: 50})
	r.Record(Event{Kind: KindPurchase, Beneficiary: b1, Amount: 3, Payment: "30"})

	assert.Equal(t, 3, r.Len())

	events := r.Events()
	require.Len(t, events, 3)
	assert.Equal(t, KindPreBuyerCredit, events[0].Kind)
	assert.Equal(t, KindPurchase, events[2].Kind)

	// IDs are assigned on append.
	for _, e := range events {
		assert.NotEmpty(t, e.ID)
	}

	byB1 := r.ByBeneficiary(b1)
	require.Len(t, byB1, 2)
	assert.Equal(t, KindPreBuyerCredit, byB1[0].Kind)
	assert.Equal(t, KindPurchase, byB1[1].Kind)

	purchases := r.ByKind(KindPurchase)
	require.Len(t, purchases, 1)
	assert.Equal(t, "30", purchases[0].Payment)
}

func TestJSONL_RoundTrip(t *testing.T) {
	r := NewRecorder()
	r.Record(Event{Kind: KindUnitFunded, Beneficiary: makeAddr(0x01), Unit: makeAddr(0xAA), Amount: 50, Block: 7, Time: 1234})
	r.Record(Event{Kind: KindPurchase, Beneficiary: makeAddr(0x02), Amount: 3, Payment: "30", Block: 100, Time: 5678})

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSONL(&buf))
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))

	decoded, err := ReadJSONL(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, r.Events(), decoded)
}

func TestReadJSONL_Invalid(t *testing.T) {
	_, err := ReadJSONL(bytes.NewBufferString("{not json}\n"))
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestBoltStore_AppendAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	e1 := Event{ID: "a", Kind: KindPreBuyerCredit, Beneficiary: makeAddr(0x01), Amount: 100, Block: 1}
	e2 := Event{ID: "b", Kind: KindPurchase, Beneficiary: makeAddr(0x02), Amount: 3, Payment: "30", Block: 100}

	require.NoError(t, s.Append(e1))
	require.NoError(t, s.Append(e2))

	n, err := s.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	events, err := s.Events()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, e1, events[0])
	assert.Equal(t, e2, events[1])
}

func TestBoltStore_AppendAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	r := NewRecorder()
	r.Record(Event{Kind: KindUnitFunded, Beneficiary: makeAddr(0x01), Amount: 50})
	r.Record(Event{Kind: KindWithdrawal, Beneficiary: makeAddr(0x01), Amount: 50})
	require.NoError(t, s.AppendAll(r.Events()))

	events, err := s.Events()
	require.NoError(t, err)
	assert.Equal(t, r.Events(), events)
}

func TestBoltStore_Closed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Append(Event{Kind: KindPurchase}), ErrStoreClosed)
	assert.ErrorIs(t, s.AppendAll([]Event{{Kind: KindPurchase}}), ErrStoreClosed)

	_, err = s.Events()
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = s.Len()
	assert.ErrorIs(t, err, ErrStoreClosed)

	assert.ErrorIs(t, s.Close(), ErrStoreClosed)
}

func TestBoltStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(Event{ID: "a", Kind: KindPurchase, Beneficiary: makeAddr(0x01), Amount: 1}))
	require.NoError(t, s.Close())

	s, err = OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	events, err := s.Events()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "a", events[0].ID)
}
