package schedule

import "fmt"

// Validate checks the schedule and returns the first error encountered,
// or nil if valid. A nil-field schedule with no allocations is valid.
func (s *Schedule) Validate() error {
	seen := make(map[string]bool, len(s.PreBuyers))
	var total uint64

	for i, pb := range s.PreBuyers {
		if pb.Address.IsZero() {
			return fmt.Errorf("%w: pre-buyer %d", ErrZeroAddress, i)
		}
		if pb.Amount == 0 {
			return fmt.Errorf("%w: pre-buyer %s", ErrZeroAllocation, pb.Address)
		}
		if seen[pb.Address.String()] {
			return fmt.Errorf("%w: %s", ErrDuplicatePreBuyer, pb.Address)
		}
		seen[pb.Address.String()] = true

		next := total + pb.Amount
		if next < total {
			return ErrAllocationOverflow
		}
		total = next
	}

	seenBeneficiary := make(map[string]bool, len(s.Beneficiaries))
	for i, b := range s.Beneficiaries {
		if b.Address.IsZero() {
			return fmt.Errorf("%w: beneficiary %d", ErrZeroAddress, i)
		}
		if seenBeneficiary[b.Address.String()] {
			return fmt.Errorf("%w: %s", ErrDuplicateBeneficiary, b.Address)
		}
		seenBeneficiary[b.Address.String()] = true
		if len(b.Tranches) == 0 {
			return fmt.Errorf("%w: %s", ErrNoTranches, b.Address)
		}
		for j, t := range b.Tranches {
			if t.Amount == 0 {
				return fmt.Errorf("%w: %s tranche %d", ErrZeroAllocation, b.Address, j)
			}
			if t.Period < 0 {
				return fmt.Errorf("%w: %s tranche %d", ErrNegativePeriod, b.Address, j)
			}
			next := total + t.Amount
			if next < total {
				return ErrAllocationOverflow
			}
			total = next
		}
	}

	return nil
}
