package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"nexus/internal/domain"
)

func investmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "investments",
		Aliases: []string{"portfolio"},
		Short:   "Show and manage the investment portfolio",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := appCtx.API.ListInvestments(ctxOf(cmd))
			if err != nil {
				return err
			}
			return printPortfolio(p)
		},
	}
	cmd.AddCommand(investmentsAddCmd(), investmentsDeleteCmd())
	return protected(cmd)
}

func printPortfolio(p domain.Portfolio) error {
	return out.print(p, func(tw table.Writer) {
		tw.AppendHeader(table.Row{"ID", "Name", "Type", "Invested", "Value", "Gain/Loss", "Return", "Risk"})
		for _, inv := range p.Investments {
			tw.AppendRow(investmentRow(inv))
		}
		s := p.Summary
		tw.AppendFooter(table.Row{
			"", "Total", "", s.TotalInvested.StringFixed(2), s.TotalCurrentValue.StringFixed(2),
			s.TotalGainLoss.StringFixed(2), fmt.Sprintf("%.2f%%", s.TotalReturnPercentage), "",
		})
	})
}

func investmentRow(inv domain.Investment) table.Row {
	return table.Row{
		inv.ID, inv.Name, inv.Type, inv.AmountInvested.StringFixed(2), inv.CurrentValue.StringFixed(2),
		inv.GainLoss.StringFixed(2), fmt.Sprintf("%.2f%%", inv.GainLossPercentage), inv.RiskLevel,
	}
}

func investmentsAddCmd() *cobra.Command {
	var inv domain.NewInvestment
	var invested, value string
	var expected float64
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Record a holding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv.Name = args[0]
			a, err := parseDecimal("invested", invested)
			if err != nil {
				return err
			}
			inv.AmountInvested = a
			v, err := parseDecimal("value", value)
			if err != nil {
				return err
			}
			inv.CurrentValue = v
			if cmd.Flags().Changed("expected-return") {
				inv.ExpectedReturn = &expected
			}
			created, err := appCtx.API.CreateInvestment(ctxOf(cmd), inv)
			if err != nil {
				return err
			}
			return out.print(created, func(tw table.Writer) {
				tw.AppendHeader(table.Row{"ID", "Name", "Type", "Invested", "Value", "Gain/Loss", "Return", "Risk"})
				tw.AppendRow(investmentRow(created))
			})
		},
	}
	cmd.Flags().StringVar(&inv.InvestmentType, "type", "", "stocks, bonds, crypto, real_estate, ...")
	cmd.Flags().StringVar(&invested, "invested", "", "amount invested")
	cmd.Flags().StringVar(&value, "value", "", "current value")
	cmd.Flags().StringVar(&inv.Currency, "currency", domain.DefaultCurrency, "currency code")
	cmd.Flags().StringVar(&inv.PurchaseDate, "purchased", "", "purchase date, YYYY-MM-DD")
	cmd.Flags().Float64Var(&expected, "expected-return", 0, "expected annual return in percent")
	cmd.Flags().StringVar(&inv.RiskLevel, "risk", "medium", "low, medium or high")
	cmd.Flags().StringVar(&inv.Notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("invested")
	_ = cmd.MarkFlagRequired("value")
	_ = cmd.MarkFlagRequired("purchased")
	return cmd
}

func investmentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a holding",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := appCtx.API.DeleteInvestment(ctxOf(cmd), id); err != nil {
				return err
			}
			out.line("Investment %d deleted.", id)
			return nil
		},
	}
}
