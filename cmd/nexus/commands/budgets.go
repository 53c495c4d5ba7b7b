package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"nexus/internal/domain"
	"nexus/internal/services/transfer"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage category budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			budgets, err := appCtx.API.ListBudgets(ctxOf(cmd))
			if err != nil {
				return err
			}
			return printBudgets(budgets)
		},
	}
	cmd.AddCommand(budgetsAddCmd(), budgetsDeleteCmd(), budgetsExportCmd(), budgetsImportCmd())
	return protected(cmd)
}

func printBudgets(budgets []domain.Budget) error {
	return out.print(budgets, func(tw table.Writer) {
		tw.AppendHeader(table.Row{"ID", "Category", "Budget", "Spent", "Remaining", "Progress", "Status", "Period"})
		for _, b := range budgets {
			tw.AppendRow(table.Row{
				b.ID, b.Category, b.Amount.StringFixed(2), b.SpentAmount.StringFixed(2),
				b.Remaining.StringFixed(2), fmt.Sprintf("%.1f%%", b.Progress), b.Status, b.Period,
			})
		}
	})
}

func budgetsAddCmd() *cobra.Command {
	var b domain.NewBudget
	var amount string
	cmd := &cobra.Command{
		Use:   "add <category>",
		Short: "Set a spending limit for a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b.Category = args[0]
			a, err := parseDecimal("amount", amount)
			if err != nil {
				return err
			}
			b.Amount = a
			created, err := appCtx.API.CreateBudget(ctxOf(cmd), b)
			if err != nil {
				return err
			}
			return printBudgets([]domain.Budget{created})
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "budget amount")
	cmd.Flags().StringVar(&b.Currency, "currency", domain.DefaultCurrency, "currency code")
	cmd.Flags().StringVar(&b.Period, "period", "monthly", "budget period")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func budgetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a budget",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := appCtx.API.DeleteBudget(ctxOf(cmd), id); err != nil {
				return err
			}
			out.line("Budget %d deleted.", id)
			return nil
		},
	}
}

func budgetsExportCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write budgets to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			budgets, err := appCtx.API.ListBudgets(ctxOf(cmd))
			if err != nil {
				return err
			}
			w, name, err := createOutput(path, transfer.KindBudgets, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := transfer.ExportBudgets(w, budgets); err != nil {
				_ = w.Close()
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}
			if name != "" {
				out.line("Exported %d budgets to %s.", len(budgets), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", `output file, "-" for stdout (default budgets_<date>.csv)`)
	return cmd
}

func budgetsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Create budgets from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			report, err := appCtx.Budgets.Import(ctxOf(cmd), in)
			if err != nil {
				return err
			}
			return printReport(report)
		},
	}
}
