package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"beerbot/internal/config"
	"beerbot/internal/decision"
)

var (
	// Global flags
	policyFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "beerbot",
	Short: "Beer distribution game decision bot",
	Long: `BeerBot answers the beer game simulator with weekly orders for the
retailer, wholesaler, distributor and factory.

Examples:
  beerbot serve --port 8080
  beerbot decide --file week.json
  beerbot handshake --url http://127.0.0.1:8080/api/decision
  beerbot simulate --mode glassbox --demand random --seed 7`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&policyFile, "policy", "", "YAML policy file (overrides POLICY_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// loadConfig reads the environment and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if policyFile != "" {
		if err := cfg.ApplyPolicyFile(policyFile); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func loadPolicy() (*config.Config, *decision.Policy, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	policy, err := decision.New(cfg.Policy)
	if err != nil {
		return nil, nil, fmt.Errorf("build policy: %w", err)
	}
	return cfg, policy, nil
}
