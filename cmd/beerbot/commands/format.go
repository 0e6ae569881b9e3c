package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"beerbot/internal/decision"
	"beerbot/internal/simulation"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// renderReport formats a simulation result as a titled table.
func renderReport(res *simulation.Result, demand simulation.DemandPattern) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("role", "cost", "mean order", "order var", "bullwhip").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, role := range decision.Roles {
		st := res.Stats[role]
		t.Row(
			string(role),
			res.Costs[role].StringFixed(2),
			fmt.Sprintf("%.2f", st.Mean),
			fmt.Sprintf("%.2f", st.Variance),
			fmt.Sprintf("%.2f", st.Bullwhip),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("%s · %d weeks · %s demand", res.Mode, res.Weeks, demand)),
		t.String(),
		fmt.Sprintf("total cost %s", res.TotalCost.StringFixed(2)),
		mutedStyle.Render("bullwhip = order variance / customer demand variance"),
	)
}
