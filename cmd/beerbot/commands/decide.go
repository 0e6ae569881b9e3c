package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"beerbot/internal/decision"
)

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Decide orders for a weekly request read from a file or stdin",
	Long: `Reads a weekly request body ({"mode": ..., "weeks": [...]}) and prints
the orders the service would answer with.

Example:
  beerbot decide --file week.json
  cat week.json | beerbot decide --mode glassbox --explain`,
	RunE: runDecide,
}

var (
	decideFile    string
	decideMode    string
	decideExplain bool
)

func init() {
	rootCmd.AddCommand(decideCmd)
	decideCmd.Flags().StringVarP(&decideFile, "file", "f", "-", "request JSON file, - for stdin")
	decideCmd.Flags().StringVar(&decideMode, "mode", "", "override the request mode (blackbox|glassbox)")
	decideCmd.Flags().BoolVar(&decideExplain, "explain", false, "print the per-role breakdown")
}

func runDecide(cmd *cobra.Command, args []string) error {
	_, policy, err := loadPolicy()
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if decideFile != "-" {
		f, err := os.Open(decideFile)
		if err != nil {
			return fmt.Errorf("open request: %w", err)
		}
		defer f.Close()
		in = f
	}

	var req struct {
		Mode  string                `json:"mode"`
		Weeks []decision.WeekRecord `json:"weeks"`
	}
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	if decideMode != "" {
		req.Mode = decideMode
	}

	d, err := policy.Decide(req.Mode, req.Weeks)
	if err != nil {
		return fmt.Errorf("decision failed: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if decideExplain {
		return enc.Encode(d)
	}
	return enc.Encode(map[string]decision.Orders{"orders": d.Orders})
}
