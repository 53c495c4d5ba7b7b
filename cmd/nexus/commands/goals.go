package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"nexus/internal/domain"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Track savings goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			goals, err := appCtx.API.ListGoals(ctxOf(cmd))
			if err != nil {
				return err
			}
			return printGoals(goals)
		},
	}
	cmd.AddCommand(goalsAddCmd(), goalsProgressCmd())
	return protected(cmd)
}

func printGoals(goals []domain.Goal) error {
	return out.print(goals, func(tw table.Writer) {
		tw.AppendHeader(table.Row{"ID", "Title", "Current", "Target", "Progress", "Deadline", "Priority"})
		for _, g := range goals {
			tw.AppendRow(table.Row{
				g.ID, g.Title, g.CurrentAmount.StringFixed(2), g.TargetAmount.StringFixed(2),
				fmt.Sprintf("%.1f%%", g.Progress()), g.Deadline.Date(), g.Priority,
			})
		}
	})
}

func goalsAddCmd() *cobra.Command {
	var g domain.NewGoal
	var target string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g.Title = args[0]
			t, err := parseDecimal("target", target)
			if err != nil {
				return err
			}
			g.TargetAmount = t
			created, err := appCtx.API.CreateGoal(ctxOf(cmd), g)
			if err != nil {
				return err
			}
			return printGoals([]domain.Goal{created})
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "target amount")
	cmd.Flags().StringVar(&g.Deadline, "deadline", "", "deadline, YYYY-MM-DD")
	cmd.Flags().StringVar(&g.Currency, "currency", domain.DefaultCurrency, "currency code")
	cmd.Flags().StringVar(&g.Category, "category", "", "goal category")
	cmd.Flags().StringVar(&g.Priority, "priority", "medium", "low, medium or high")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("deadline")
	return cmd
}

func goalsProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <id> <current-amount>",
		Short: "Record how much has been saved towards a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := parseDecimal("current-amount", args[1])
			if err != nil {
				return err
			}
			g, err := appCtx.API.UpdateGoalProgress(ctxOf(cmd), id, current)
			if err != nil {
				return err
			}
			return printGoals([]domain.Goal{g})
		},
	}
}
