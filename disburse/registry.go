package disburse

import "github.com/skmgoldin/simple-token-sale/ledger"

// Registry maps beneficiaries to their disbursement units. It is
// populated synchronously at sale construction, so callers look units up
// directly instead of reconciling construction logs.
type Registry struct {
	byBeneficiary map[ledger.Address][]*Unit
	all           []*Unit
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byBeneficiary: make(map[ledger.Address][]*Unit)}
}

// Add registers a unit under its beneficiary. Units for the same
// beneficiary keep insertion (tranche) order.
func (r *Registry) Add(u *Unit) {
	r.byBeneficiary[u.Beneficiary()] = append(r.byBeneficiary[u.Beneficiary()], u)
	r.all = append(r.all, u)
}

// UnitsFor returns the units for a beneficiary, in tranche order.
func (r *Registry) UnitsFor(beneficiary ledger.Address) []*Unit {
	return r.byBeneficiary[beneficiary]
}

// All returns every unit in insertion order.
func (r *Registry) All() []*Unit {
	return r.all
}

// Len returns the number of registered units.
func (r *Registry) Len() int {
	return len(r.all)
}

// TotalRemaining returns the tokens still held across all units.
func (r *Registry) TotalRemaining() uint64 {
	var sum uint64
	for _, u := range r.all {
		sum += u.Remaining()
	}
	return sum
}
