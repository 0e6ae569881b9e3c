package decision

// SupplyLine estimates what role has ordered but not yet received.
//
// The history carries no shipment lead times, so the estimate assumes a fixed
// leadTime: the role's own orders from the leadTime-1 weeks before the
// current one are still in transit. With the default of 2 this is just last
// week's order. Weeks without an orders entry for the role count as zero.
func SupplyLine(history []WeekRecord, role Role, leadTime int) int {
	n := len(history)
	if n < 2 || history[n-1].Week <= 1 {
		return 0
	}
	total := 0
	for i := n - 2; i >= 0 && i >= n-leadTime; i-- {
		total += history[i].Orders[role]
	}
	return total
}
