package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "List scheduled bills and payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := appCtx.API.ListRecurring(ctxOf(cmd))
			if err != nil {
				return err
			}
			return out.print(items, func(tw table.Writer) {
				tw.AppendHeader(table.Row{"ID", "Description", "Amount", "Frequency", "Next due", "Auto-pay"})
				for _, r := range items {
					tw.AppendRow(table.Row{r.ID, r.Description, r.Amount.StringFixed(2) + " " + r.Currency, r.Frequency, r.NextDueDate.Date(), r.AutoPay})
				}
			})
		},
	}
	return protected(cmd)
}
