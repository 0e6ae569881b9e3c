package decision

// Mode selects the ordering policy.
type Mode string

const (
	// ModeBlackbox is independent decision making; also the fallback for any
	// unrecognised mode.
	ModeBlackbox Mode = "blackbox"
	// ModeGlassbox is coordinated pass-through ordering.
	ModeGlassbox Mode = "glassbox"
)

// ParseMode maps a request mode to a policy. Anything but "glassbox" is
// blackbox.
func ParseMode(s string) Mode {
	if Mode(s) == ModeGlassbox {
		return ModeGlassbox
	}
	return ModeBlackbox
}

// Decision is the result of one call.
type Decision struct {
	Mode      Mode           `json:"mode"`
	Week      int            `json:"week"`
	ColdStart bool           `json:"cold_start,omitempty"`
	Orders    Orders         `json:"orders"`
	Roles     []RoleDecision `json:"roles,omitempty"`
	// CustomerDemand is the smoothed end-customer demand, glassbox only.
	CustomerDemand float64 `json:"customer_demand,omitempty"`
}

// Decide dispatches on mode. An empty history is the cold start: every role
// orders the default quantity whatever the mode.
func (p *Policy) Decide(mode string, history []WeekRecord) (Decision, error) {
	m := ParseMode(mode)
	if len(history) == 0 {
		return p.coldStart(m), nil
	}
	if m == ModeGlassbox {
		return p.DecideCoordinated(history)
	}
	return p.DecideIndependent(history)
}

// DefaultOrders is the cold-start order for every role.
func (p *Policy) DefaultOrders() Orders {
	out := make(Orders, len(Roles))
	for _, role := range Roles {
		out[role] = p.params.DefaultOrder
	}
	return out
}

func (p *Policy) coldStart(m Mode) Decision {
	return Decision{Mode: m, ColdStart: true, Orders: p.DefaultOrders()}
}
