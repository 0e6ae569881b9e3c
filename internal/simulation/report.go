package simulation

import (
	"github.com/shopspring/decimal"

	"beerbot/internal/decision"
)

// OrderStats summarises one role's order series.
type OrderStats struct {
	Mean     float64
	Variance float64
	// Bullwhip is order variance over customer demand variance. It is zero
	// when customer demand never varies.
	Bullwhip float64
}

// Result is the outcome of a game.
type Result struct {
	Mode           decision.Mode
	Weeks          int
	CustomerDemand []int
	History        []decision.WeekRecord
	Costs          map[decision.Role]decimal.Decimal
	TotalCost      decimal.Decimal
	Stats          map[decision.Role]OrderStats
}

func (g *Game) result() *Result {
	r := &Result{
		Mode:           decision.ParseMode(g.cfg.Mode),
		Weeks:          len(g.history),
		CustomerDemand: g.demand,
		History:        g.history,
		Costs:          make(map[decision.Role]decimal.Decimal, len(decision.Roles)),
		TotalCost:      decimal.Zero,
		Stats:          make(map[decision.Role]OrderStats, len(decision.Roles)),
	}

	_, demandVar := meanVariance(g.demand)
	for _, role := range decision.Roles {
		r.Costs[role] = g.costs[role]
		r.TotalCost = r.TotalCost.Add(g.costs[role])

		orders := make([]int, 0, len(g.history))
		for _, w := range g.history {
			orders = append(orders, w.Orders[role])
		}
		mean, variance := meanVariance(orders)
		st := OrderStats{Mean: mean, Variance: variance}
		if demandVar > 0 {
			st.Bullwhip = variance / demandVar
		}
		r.Stats[role] = st
	}
	return r
}

// meanVariance returns the mean and population variance of xs.
func meanVariance(xs []int) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += float64(x)
	}
	mean := sum / float64(len(xs))

	ss := 0.0
	for _, x := range xs {
		d := float64(x) - mean
		ss += d * d
	}
	return mean, ss / float64(len(xs))
}
