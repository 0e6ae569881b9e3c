// Package simulation plays the beer distribution game locally against a
// decision policy, so tunings can be compared without the game server.
package simulation

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"beerbot/internal/decision"
)

// DemandPattern names an end-customer demand series.
type DemandPattern string

const (
	// DemandStep is the classic game: 4 a week, jumping to 8 from week 5.
	DemandStep DemandPattern = "step"
	// DemandConstant is 4 every week.
	DemandConstant DemandPattern = "constant"
	// DemandRandom draws uniformly from 0..8 with the configured seed.
	DemandRandom DemandPattern = "random"
)

// Decider is what the game asks for orders each week. *decision.Policy
// satisfies it.
type Decider interface {
	Decide(mode string, history []decision.WeekRecord) (decision.Decision, error)
}

// Config describes one game.
type Config struct {
	Weeks            int
	Mode             string
	Demand           DemandPattern
	Seed             int64
	InitialInventory int
	// InitialFlow is the order and shipment quantity the chain is primed
	// with: every in-transit slot and every role's previous order.
	InitialFlow   int
	ShippingDelay int
	HoldingCost   decimal.Decimal
	BacklogCost   decimal.Decimal
}

// DefaultConfig is the classroom setup: 36 weeks, 12 units on hand, 4 units
// in every pipeline slot, a two-week shipping delay, 0.50 per unit held and
// 1.00 per unit backlogged each week.
func DefaultConfig() Config {
	return Config{
		Weeks:            36,
		Mode:             string(decision.ModeBlackbox),
		Demand:           DemandStep,
		Seed:             2025,
		InitialInventory: 12,
		InitialFlow:      4,
		ShippingDelay:    2,
		HoldingCost:      decimal.NewFromFloat(0.5),
		BacklogCost:      decimal.NewFromInt(1),
	}
}

func (c Config) validate() error {
	if c.Weeks < 1 {
		return fmt.Errorf("weeks must be >= 1, got %d", c.Weeks)
	}
	if c.ShippingDelay < 1 {
		return fmt.Errorf("shipping delay must be >= 1, got %d", c.ShippingDelay)
	}
	if c.InitialInventory < 0 || c.InitialFlow < 0 {
		return fmt.Errorf("initial inventory and flow must be >= 0")
	}
	switch c.Demand {
	case DemandStep, DemandConstant, DemandRandom:
	default:
		return fmt.Errorf("unknown demand pattern %q", c.Demand)
	}
	return nil
}

type roleState struct {
	inventory int
	backlog   int
	inbound   []int // shipments in transit, front arrives next
}

// Game is a single run. It is not safe for concurrent use.
type Game struct {
	cfg     Config
	decider Decider
	rng     *rand.Rand

	roles      map[decision.Role]*roleState
	lastOrders decision.Orders
	history    []decision.WeekRecord
	demand     []int
	costs      map[decision.Role]decimal.Decimal
}

// NewGame primes a chain in steady state.
func NewGame(cfg Config, decider Decider) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	g := &Game{
		cfg:        cfg,
		decider:    decider,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		roles:      make(map[decision.Role]*roleState, len(decision.Roles)),
		lastOrders: make(decision.Orders, len(decision.Roles)),
		costs:      make(map[decision.Role]decimal.Decimal, len(decision.Roles)),
	}
	for _, role := range decision.Roles {
		inbound := make([]int, cfg.ShippingDelay)
		for i := range inbound {
			inbound[i] = cfg.InitialFlow
		}
		g.roles[role] = &roleState{inventory: cfg.InitialInventory, inbound: inbound}
		g.lastOrders[role] = cfg.InitialFlow
		g.costs[role] = decimal.Zero
	}
	return g, nil
}

// Run plays all weeks and returns the outcome.
func (g *Game) Run() (*Result, error) {
	for week := len(g.history) + 1; week <= g.cfg.Weeks; week++ {
		if err := g.Step(); err != nil {
			return nil, err
		}
	}
	return g.result(), nil
}

// Step plays one week: shipments arrive, orders arrive and are filled as far
// as stock allows, the policy decides and its orders go upstream.
func (g *Game) Step() error {
	week := len(g.history) + 1
	customer := g.customerDemand(week)
	g.demand = append(g.demand, customer)

	arriving := make(map[decision.Role]int, len(decision.Roles))
	for _, role := range decision.Roles {
		s := g.roles[role]
		arriving[role] = s.inbound[0]
		s.inbound = s.inbound[1:]
		s.inventory += arriving[role]
	}

	rec := decision.WeekRecord{Week: week, Roles: make(map[decision.Role]decision.RoleState, len(decision.Roles))}
	for _, role := range decision.Roles {
		s := g.roles[role]
		incoming := customer
		if down, ok := role.Downstream(); ok {
			incoming = g.lastOrders[down]
		}

		due := incoming + s.backlog
		shipped := min(s.inventory, due)
		s.inventory -= shipped
		s.backlog = due - shipped
		if down, ok := role.Downstream(); ok {
			g.roles[down].inbound = append(g.roles[down].inbound, shipped)
		}

		rec.Roles[role] = decision.RoleState{
			Inventory:         s.inventory,
			Backlog:           s.backlog,
			IncomingOrders:    incoming,
			ArrivingShipments: arriving[role],
		}
		g.costs[role] = g.costs[role].
			Add(g.cfg.HoldingCost.Mul(decimal.NewFromInt(int64(s.inventory)))).
			Add(g.cfg.BacklogCost.Mul(decimal.NewFromInt(int64(s.backlog))))
	}
	g.history = append(g.history, rec)

	d, err := g.decider.Decide(g.cfg.Mode, g.history)
	if err != nil {
		return fmt.Errorf("week %d: %w", week, err)
	}

	placed := make(map[decision.Role]int, len(decision.Roles))
	for _, role := range decision.Roles {
		placed[role] = d.Orders[role]
	}
	g.history[len(g.history)-1].Orders = placed
	g.lastOrders = placed

	// The factory brews its own order; it lands after the same delay.
	factory := g.roles[decision.Factory]
	factory.inbound = append(factory.inbound, placed[decision.Factory])
	return nil
}

// History is the record the policy has seen so far.
func (g *Game) History() []decision.WeekRecord {
	return g.history
}

func (g *Game) customerDemand(week int) int {
	switch g.cfg.Demand {
	case DemandConstant:
		return 4
	case DemandRandom:
		return g.rng.Intn(9)
	default:
		if week <= 4 {
			return 4
		}
		return 8
	}
}
