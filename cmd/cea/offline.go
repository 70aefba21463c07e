package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sawpanic/cea/internal/companies"
	"github.com/sawpanic/cea/internal/domain/advice"
	"github.com/sawpanic/cea/internal/domain/screening"
	"github.com/sawpanic/cea/internal/domain/sectors"
)

func newAdviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advice",
		Short: "Print the canned advice for a role and sector",
		RunE:  runAdvice,
	}
	cmd.Flags().String("user-type", "citizen", "User role (government|business|citizen)")
	cmd.Flags().String("sector", sectors.Housing, "Sector key")
	cmd.Flags().String("problem", "", "Optional problem text to screen")
	return cmd
}

func runAdvice(cmd *cobra.Command, args []string) error {
	userType, _ := cmd.Flags().GetString("user-type")
	sector, _ := cmd.Flags().GetString("sector")
	problem, _ := cmd.Flags().GetString("problem")

	userType = strings.ToLower(userType)
	sector = strings.ToLower(sector)
	out := cmd.OutOrStdout()

	if screening.IsSuspicious(problem) {
		fmt.Fprintln(out, screening.RefusalMessage)
		return nil
	}
	if err := sectors.NewDataset().Validate(sector); err != nil {
		return err
	}

	fmt.Fprint(out, advice.Header(userType, sector))
	fmt.Fprintln(out, advice.For(userType, sector))
	return nil
}

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Print the simulated 5-year revenue projection",
		RunE:  runProject,
	}
	cmd.Flags().String("revenue", "", "Starting revenue (positive number)")
	return cmd
}

func runProject(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetString("revenue")
	revenue, err := companies.ParseRevenue(strings.TrimSpace(raw))
	if err != nil {
		return err
	}

	p := companies.ProjectGrowth(revenue)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-6s %14s %14s\n", "Year", "Baseline", "With CEA")
	for i, year := range sectors.Years {
		fmt.Fprintf(out, "%-6d %14.2f %14.2f\n", year, p.Baseline[i], p.Projected[i])
	}
	return nil
}
