package decision

import "fmt"

// Params holds the policy tunables. A Policy copies them at construction and
// never changes them afterwards.
type Params struct {
	// SmoothingWindow is the number of trailing weeks averaged for demand.
	SmoothingWindow int
	// WeeksOfSupplyTarget is how many weeks of smoothed demand to hold.
	WeeksOfSupplyTarget float64
	// CorrectionFactor in [0,1] is the share of the inventory gap closed per week.
	CorrectionFactor float64
	// SupplyLeadTime is the assumed order-to-delivery delay in weeks. Orders
	// from the last SupplyLeadTime-1 weeks count as in transit.
	SupplyLeadTime int
	// DefaultOrder is ordered by every role when there is no history yet.
	DefaultOrder int
}

// DefaultParams returns the tuning the bot ships with.
func DefaultParams() Params {
	return Params{
		SmoothingWindow:     4,
		WeeksOfSupplyTarget: 4,
		CorrectionFactor:    0.5,
		SupplyLeadTime:      2,
		DefaultOrder:        10,
	}
}

// Validate checks parameter ranges.
func (p Params) Validate() error {
	if p.SmoothingWindow < 1 {
		return fmt.Errorf("smoothing window must be >= 1, got %d", p.SmoothingWindow)
	}
	if p.WeeksOfSupplyTarget < 0 {
		return fmt.Errorf("weeks of supply target must be >= 0, got %g", p.WeeksOfSupplyTarget)
	}
	if p.CorrectionFactor < 0 || p.CorrectionFactor > 1 {
		return fmt.Errorf("correction factor must be in [0,1], got %g", p.CorrectionFactor)
	}
	if p.SupplyLeadTime < 1 {
		return fmt.Errorf("supply lead time must be >= 1, got %d", p.SupplyLeadTime)
	}
	if p.DefaultOrder < 0 {
		return fmt.Errorf("default order must be >= 0, got %d", p.DefaultOrder)
	}
	return nil
}
