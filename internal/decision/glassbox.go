package decision

// DecideCoordinated is glassbox mode. The retailer, the only role that sees
// real customer demand, runs OrderUpTo. Every other role passes through
// exactly what its customer ordered from it this week, so no stage
// re-forecasts an already smoothed signal.
//
// The smoothed customer demand is reported in the Decision but does not feed
// into any upstream order.
func (p *Policy) DecideCoordinated(history []WeekRecord) (Decision, error) {
	if len(history) == 0 {
		return p.coldStart(ModeGlassbox), nil
	}
	if err := Validate(history); err != nil {
		return Decision{}, err
	}

	current := history[len(history)-1]
	d := Decision{
		Mode:   ModeGlassbox,
		Week:   current.Week,
		Orders: make(Orders, len(Roles)),
		Roles:  make([]RoleDecision, 0, len(Roles)),
		CustomerDemand: SmoothedDemand(
			ExtractDemand(history, Retailer), current.Week, p.params.SmoothingWindow),
	}

	retailer := p.OrderUpTo(history, Retailer)
	d.Orders[Retailer] = retailer.Order
	d.Roles = append(d.Roles, retailer)

	for _, role := range Roles[1:] {
		incoming := current.Roles[role].IncomingOrders
		order := max(0, incoming)
		d.Orders[role] = order
		d.Roles = append(d.Roles, RoleDecision{
			Role:               role,
			EffectiveInventory: current.Roles[role].EffectiveInventory(),
			RawOrder:           float64(incoming),
			Order:              order,
			PassThrough:        true,
		})
	}
	return d, nil
}
