package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func predictCmd() *cobra.Command {
	var amount string
	cmd := &cobra.Command{
		Use:   "predict <description>",
		Short: "Ask the backend classifier for a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var amt *decimal.Decimal
			if amount != "" {
				a, err := parseDecimal("amount", amount)
				if err != nil {
					return err
				}
				amt = &a
			}
			p, err := appCtx.API.PredictCategory(ctxOf(cmd), args[0], amt)
			if err != nil {
				return err
			}
			return out.print(p, func(tw table.Writer) {
				tw.AppendHeader(table.Row{"Category", "Confidence"})
				tw.AppendRow(table.Row{p.Category, fmt.Sprintf("%.1f%%", p.Confidence*100)})
			})
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "transaction amount, refines the guess")
	return cmd
}

func modelInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "model-info",
		Short: "Describe the backend classifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := appCtx.API.ModelInfo(ctxOf(cmd))
			if err != nil {
				return err
			}
			return out.print(info, func(tw table.Writer) {
				tw.AppendHeader(table.Row{"Model", "Trained", "Categories"})
				tw.AppendRow(table.Row{info.ModelType, info.IsTrained, strings.Join(info.Categories, ", ")})
			})
		},
	}
}
