package commands

import (
	"fmt"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"nexus/internal/domain"
	"nexus/internal/services/dashboard"
)

func dashboardCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show balances, recent activity, budgets and goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			var (
				snap dashboard.Snapshot
				err  error
			)
			if strict {
				snap, err = appCtx.Dashboard.Load(ctx)
			} else {
				snap, err = appCtx.Dashboard.LoadBestEffort(ctx)
			}
			if err != nil {
				return err
			}
			if err := printSnapshot(snap); err != nil {
				return err
			}
			for _, w := range failedWidgets(snap) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s unavailable: %s\n", w, describe(snap.Failures[w]))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any widget cannot be loaded")
	return protected(cmd)
}

func failedWidgets(snap dashboard.Snapshot) []dashboard.Widget {
	var ws []dashboard.Widget
	for w := range snap.Failures {
		ws = append(ws, w)
	}
	slices.Sort(ws)
	return ws
}

func printSnapshot(snap dashboard.Snapshot) error {
	view := struct {
		Accounts      []domain.Account         `json:"accounts"`
		Transactions  []domain.Transaction     `json:"recent_transactions"`
		Budgets       []domain.Budget          `json:"budgets"`
		Goals         []domain.Goal            `json:"goals"`
		Insights      *domain.SpendingInsights `json:"insights,omitempty"`
		Health        *domain.FinancialHealth  `json:"health,omitempty"`
		Notifications *domain.NotificationList `json:"notifications,omitempty"`
	}{snap.Accounts, snap.Transactions, snap.Budgets, snap.Goals, snap.Insights, snap.Health, snap.Notifications}

	return out.print(view, func(tw table.Writer) {
		tw.SetTitle("Nexus Finance")
		tw.AppendHeader(table.Row{"Section", "Item", "Value"})

		total := decimal.Zero
		for _, a := range snap.Accounts {
			tw.AppendRow(table.Row{"Accounts", a.Name, a.Balance.StringFixed(2) + " " + a.Currency})
			total = total.Add(a.Balance)
		}
		if len(snap.Accounts) > 0 {
			tw.AppendRow(table.Row{"Accounts", "Total", total.StringFixed(2)})
		}
		tw.AppendSeparator()
		for _, tx := range snap.Transactions {
			tw.AppendRow(table.Row{"Recent", tx.TransactionDate.Date() + " " + tx.Description, tx.Amount.StringFixed(2)})
		}
		tw.AppendSeparator()
		for _, b := range snap.Budgets {
			tw.AppendRow(table.Row{"Budgets", b.Category, fmt.Sprintf("%.1f%% (%s)", b.Progress, b.Status)})
		}
		for _, g := range snap.Goals {
			tw.AppendRow(table.Row{"Goals", g.Title, fmt.Sprintf("%.1f%%", g.Progress())})
		}
		tw.AppendSeparator()
		if in := snap.Insights; in != nil {
			tw.AppendRow(table.Row{"Insights", "Net cash flow", in.NetCashFlow.StringFixed(2)})
		}
		if h := snap.Health; h != nil {
			tw.AppendRow(table.Row{"Health", "Score", fmt.Sprintf("%.1f/100", h.Score)})
		}
		if n := snap.Notifications; n != nil {
			tw.AppendRow(table.Row{"Inbox", "Unread", n.UnreadCount})
		}
	})
}
