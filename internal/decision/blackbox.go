package decision

import "math"

// Policy turns a week history into orders. It is immutable after New and
// safe for concurrent use.
type Policy struct {
	params Params
}

// New builds a Policy from validated params.
func New(p Params) (*Policy, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Policy{params: p}, nil
}

// Params returns the tuning the policy was built with.
func (p *Policy) Params() Params {
	return p.params
}

// RoleDecision records how one role's order was reached.
type RoleDecision struct {
	Role               Role    `json:"role"`
	SmoothedDemand     float64 `json:"smoothed_demand"`
	EffectiveInventory int     `json:"effective_inventory"`
	SupplyLine         int     `json:"supply_line"`
	DesiredLevel       float64 `json:"desired_level"`
	Adjustment         float64 `json:"adjustment"`
	RawOrder           float64 `json:"raw_order"`
	Order              int     `json:"order"`
	PassThrough        bool    `json:"pass_through,omitempty"`
}

// OrderUpTo runs the order-up-to heuristic for one role on that role's own
// history only:
//
//	desired    = smoothed demand * weeks of supply
//	adjustment = (desired - effective inventory - supply line) * correction
//	order      = max(0, round(smoothed demand + adjustment))
//
// history must be non-empty and have passed Validate.
func (p *Policy) OrderUpTo(history []WeekRecord, role Role) RoleDecision {
	current := history[len(history)-1]
	state := current.Roles[role]

	smoothed := SmoothedDemand(ExtractDemand(history, role), current.Week, p.params.SmoothingWindow)
	effective := state.EffectiveInventory()
	supply := SupplyLine(history, role, p.params.SupplyLeadTime)

	desired := smoothed * p.params.WeeksOfSupplyTarget
	adjustment := (desired - float64(effective) - float64(supply)) * p.params.CorrectionFactor
	raw := smoothed + adjustment

	return RoleDecision{
		Role:               role,
		SmoothedDemand:     smoothed,
		EffectiveInventory: effective,
		SupplyLine:         supply,
		DesiredLevel:       desired,
		Adjustment:         adjustment,
		RawOrder:           raw,
		Order:              roundOrder(raw),
	}
}

// DecideIndependent is blackbox mode: every role runs OrderUpTo on its own
// state with no view of the rest of the chain.
func (p *Policy) DecideIndependent(history []WeekRecord) (Decision, error) {
	if len(history) == 0 {
		return p.coldStart(ModeBlackbox), nil
	}
	if err := Validate(history); err != nil {
		return Decision{}, err
	}

	d := Decision{
		Mode:   ModeBlackbox,
		Week:   history[len(history)-1].Week,
		Orders: make(Orders, len(Roles)),
		Roles:  make([]RoleDecision, 0, len(Roles)),
	}
	for _, role := range Roles {
		rd := p.OrderUpTo(history, role)
		d.Orders[role] = rd.Order
		d.Roles = append(d.Roles, rd)
	}
	return d, nil
}

// roundOrder rounds half to even (6.5 -> 6, 7.5 -> 8) and floors at zero.
func roundOrder(raw float64) int {
	r := math.RoundToEven(raw)
	if r < 0 || math.IsNaN(r) {
		return 0
	}
	return int(r)
}
