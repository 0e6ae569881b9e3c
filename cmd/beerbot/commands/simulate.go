package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"beerbot/internal/decision"
	"beerbot/internal/simulation"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a local beer game against the policy",
	Long: `Runs a four-echelon beer game locally with the configured policy and
prints costs and the bullwhip ratio per role.

Demand patterns:
  step      4 a week, 8 from week 5 (classic)
  constant  4 every week
  random    uniform 0..8, seeded

Example:
  beerbot simulate --mode glassbox
  beerbot simulate --compare --demand random --seed 7`,
	RunE: runSimulate,
}

var (
	simMode    string
	simWeeks   int
	simSeed    int64
	simDemand  string
	simCompare bool
)

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringVar(&simMode, "mode", "blackbox", "blackbox or glassbox")
	simulateCmd.Flags().IntVar(&simWeeks, "weeks", 36, "number of weeks")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 2025, "seed for random demand")
	simulateCmd.Flags().StringVar(&simDemand, "demand", string(simulation.DemandStep), "step, constant or random")
	simulateCmd.Flags().BoolVar(&simCompare, "compare", false, "run both modes")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	_, policy, err := loadPolicy()
	if err != nil {
		return err
	}

	modes := []string{simMode}
	if simCompare {
		modes = []string{string(decision.ModeBlackbox), string(decision.ModeGlassbox)}
	}

	for _, mode := range modes {
		cfg := simulation.DefaultConfig()
		cfg.Mode = mode
		cfg.Weeks = simWeeks
		cfg.Seed = simSeed
		cfg.Demand = simulation.DemandPattern(simDemand)

		game, err := simulation.NewGame(cfg, policy)
		if err != nil {
			return err
		}
		res, err := game.Run()
		if err != nil {
			return fmt.Errorf("simulate %s: %w", mode, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderReport(res, simulation.DemandPattern(simDemand)))
	}
	return nil
}
