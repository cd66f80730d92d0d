// Package journal records the distribution and purchase events the sale
// engine emits: pre-buyer credits, disbursement unit funding, public
// purchases and vesting withdrawals. Downstream tooling consumes the
// stream to reconcile which unit belongs to which beneficiary and
// tranche.
package journal

import (
	"sync"

	"github.com/google/uuid"

	"github.com/skmgoldin/simple-token-sale/ledger"
)

// Kind classifies an event.
type Kind string

const (
	// KindPreBuyerCredit records a construction-time pre-buyer allocation.
	KindPreBuyerCredit Kind = "prebuyer_credit"

	// KindUnitFunded records the funding of a disbursement unit with one
	// tranche's tokens at construction.
	KindUnitFunded Kind = "unit_funded"

	// KindPurchase records a successful public-sale purchase.
	KindPurchase Kind = "purchase"

	// KindWithdrawal records a vested withdrawal from a disbursement unit.
	KindWithdrawal Kind = "withdrawal"
)

// Event is a single journal record. Amount is in token units; Payment,
// when present, is the forwarded payment-currency amount as a decimal
// string (purchases only). Unit is set for events tied to a disbursement
// unit account.
type Event struct {
	ID          string         `json:"id"`
	Kind        Kind           `json:"kind"`
	Beneficiary ledger.Address `json:"beneficiary"`
	Unit        ledger.Address `json:"unit"`
	Amount      uint64         `json:"amount"`
	Payment     string         `json:"payment,omitempty"`
	Block       uint64         `json:"block"`
	Time        int64          `json:"time"`
}

// Sink receives events as they are emitted.
type Sink interface {
	Record(e Event)
}

// Recorder is an in-memory, append-only Sink.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Compile-time interface check.
var _ Sink = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends an event, assigning a fresh ID if the event has none.
func (r *Recorder) Record(e Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of all recorded events in emission order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// ByBeneficiary returns all events for the given beneficiary, in order.
func (r *Recorder) ByBeneficiary(a ledger.Address) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Beneficiary == a {
			out = append(out, e)
		}
	}
	return out
}

// ByKind returns all events of the given kind, in order.
func (r *Recorder) ByKind(k Kind) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}
