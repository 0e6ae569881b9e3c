package decision

import (
	"encoding/json"
	"fmt"
)

// Role is one echelon of the supply chain.
type Role string

const (
	Retailer    Role = "retailer"
	Wholesaler  Role = "wholesaler"
	Distributor Role = "distributor"
	Factory     Role = "factory"
)

// Roles lists the chain from the customer-facing end to the factory.
var Roles = []Role{Retailer, Wholesaler, Distributor, Factory}

// Valid reports whether r is one of the four chain roles.
func (r Role) Valid() bool {
	switch r {
	case Retailer, Wholesaler, Distributor, Factory:
		return true
	}
	return false
}

// Upstream returns the supplier of r. The factory has none.
func (r Role) Upstream() (Role, bool) {
	for i, role := range Roles {
		if role == r && i+1 < len(Roles) {
			return Roles[i+1], true
		}
	}
	return "", false
}

// Downstream returns the customer of r. The retailer serves the end customer
// and has no downstream role.
func (r Role) Downstream() (Role, bool) {
	for i, role := range Roles {
		if role == r && i > 0 {
			return Roles[i-1], true
		}
	}
	return "", false
}

// RoleState is one role's observed state in one week.
type RoleState struct {
	Inventory         int `json:"inventory"`
	Backlog           int `json:"backlog"`
	IncomingOrders    int `json:"incoming_orders"`
	ArrivingShipments int `json:"arriving_shipments"`
}

// EffectiveInventory is inventory net of backlog. Negative means net shortage.
func (s RoleState) EffectiveInventory() int {
	return s.Inventory - s.Backlog
}

// UnmarshalJSON rejects role entries that omit inventory, backlog or
// incoming_orders instead of silently reading them as zero.
func (s *RoleState) UnmarshalJSON(data []byte) error {
	var raw struct {
		Inventory         *int `json:"inventory"`
		Backlog           *int `json:"backlog"`
		IncomingOrders    *int `json:"incoming_orders"`
		ArrivingShipments int  `json:"arriving_shipments"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Inventory == nil:
		return fmt.Errorf("%w: role state missing inventory", ErrMalformedHistory)
	case raw.Backlog == nil:
		return fmt.Errorf("%w: role state missing backlog", ErrMalformedHistory)
	case raw.IncomingOrders == nil:
		return fmt.Errorf("%w: role state missing incoming_orders", ErrMalformedHistory)
	}
	*s = RoleState{
		Inventory:         *raw.Inventory,
		Backlog:           *raw.Backlog,
		IncomingOrders:    *raw.IncomingOrders,
		ArrivingShipments: raw.ArrivingShipments,
	}
	return nil
}

// WeekRecord is one simulated week. Orders is empty for the most recent week
// because that is the week being decided.
type WeekRecord struct {
	Week   int                `json:"week"`
	Roles  map[Role]RoleState `json:"roles"`
	Orders map[Role]int       `json:"orders,omitempty"`
}

// Orders maps each role to the quantity it orders this week.
type Orders map[Role]int

// Validate checks the invariants the policies rely on: weeks start at 1 or
// later, strictly increase, and every week carries all four roles.
func Validate(history []WeekRecord) error {
	prev := 0
	for i, w := range history {
		if w.Week < 1 {
			return fmt.Errorf("%w: record %d has week %d", ErrMalformedHistory, i, w.Week)
		}
		if w.Week <= prev {
			return fmt.Errorf("%w: week %d follows week %d", ErrMalformedHistory, w.Week, prev)
		}
		prev = w.Week
		for _, role := range Roles {
			if _, ok := w.Roles[role]; !ok {
				return fmt.Errorf("%w: week %d missing role %s", ErrMalformedHistory, w.Week, role)
			}
		}
	}
	return nil
}

// ExtractDemand returns the incoming_orders series of one role. The history
// must have passed Validate.
func ExtractDemand(weeks []WeekRecord, role Role) []int {
	out := make([]int, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, w.Roles[role].IncomingOrders)
	}
	return out
}
