package commands

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"nexus/internal/domain"
	"nexus/internal/services/transfer"
)

const defaultInflation = 0.02

func analyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Spending insights, cash-flow forecast and health score",
	}
	cmd.AddCommand(insightsCmd(), forecastCmd(), healthCmd(), reportCmd())
	return protected(cmd)
}

func insightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show spending insights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := appCtx.API.SpendingInsights(ctxOf(cmd))
			if err != nil {
				return err
			}
			return out.print(in, func(tw table.Writer) {
				tw.AppendHeader(table.Row{"Metric", "Value"})
				tw.AppendRow(table.Row{"Total income", in.TotalIncome.StringFixed(2)})
				tw.AppendRow(table.Row{"Total expenses", in.TotalExpenses.Abs().StringFixed(2)})
				tw.AppendRow(table.Row{"Net cash flow", in.NetCashFlow.StringFixed(2)})
				tw.AppendRow(table.Row{"Average monthly spend", in.AverageMonthlySpend.StringFixed(2)})
				tw.AppendRow(table.Row{"Spending velocity", fmt.Sprintf("%.1f%%", in.SpendingVelocity)})
				tw.AppendSeparator()
				for _, k := range byValueDesc(in.TopCategories) {
					tw.AppendRow(table.Row{"Top: " + k, in.TopCategories[k].StringFixed(2)})
				}
				for _, r := range in.RecurringExpenses {
					tw.AppendRow(table.Row{"Recurring: " + r.Description,
						fmt.Sprintf("%s every %d days, next %s", r.AverageAmount.StringFixed(2), r.FrequencyDays, r.EstimatedNextDate)})
				}
			})
		},
	}
}

func forecastCmd() *cobra.Command {
	var inflation float64
	var days int
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project the balance over the next 30 days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := appCtx.API.CashFlowForecast(ctxOf(cmd), inflation)
			if err != nil {
				return err
			}
			return out.print(f, func(tw table.Writer) {
				tw.AppendHeader(table.Row{"Date", "Day", "Spending", "Balance"})
				for i, d := range f.Forecast {
					if days > 0 && i == days {
						break
					}
					tw.AppendRow(table.Row{d.Date, d.DayOfWeek, d.ProjectedSpending.StringFixed(2), d.ProjectedBalance.StringFixed(2)})
				}
				tw.AppendFooter(table.Row{"Risk", f.RiskAssessment, "Runway", runway(f.DaysUntilNegativeBalance)})
			})
		},
	}
	cmd.Flags().Float64Var(&inflation, "inflation", defaultInflation, "monthly inflation rate applied to spending")
	cmd.Flags().IntVar(&days, "days", 0, "only show the first n days")
	return cmd
}

func runway(days *int) string {
	if days == nil || *days <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d days", *days)
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show the financial health score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := appCtx.API.FinancialHealth(ctxOf(cmd))
			if err != nil {
				return err
			}
			return printHealth(h)
		},
	}
}

func printHealth(h domain.FinancialHealth) error {
	return out.print(h, func(tw table.Writer) {
		tw.AppendHeader(table.Row{"Component", "Score"})
		tw.AppendRow(table.Row{"overall", fmt.Sprintf("%.1f/100", h.Score)})
		for _, k := range sortedFloatKeys(h.Breakdown) {
			tw.AppendRow(table.Row{k, fmt.Sprintf("%.2f", h.Breakdown[k])})
		}
		if len(h.Recommendations) > 0 {
			tw.AppendSeparator()
		}
		for _, r := range h.Recommendations {
			tw.AppendRow(table.Row{"advice", r})
		}
	})
}

func reportCmd() *cobra.Command {
	var path, timeRange string
	var inflation float64
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export health, insights and forecast as a CSV report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				health   domain.FinancialHealth
				insights domain.SpendingInsights
				forecast domain.CashFlowForecast
			)
			g, ctx := errgroup.WithContext(ctxOf(cmd))
			g.Go(func() (err error) {
				health, err = appCtx.API.FinancialHealth(ctx)
				return err
			})
			g.Go(func() (err error) {
				insights, err = appCtx.API.SpendingInsights(ctx)
				return err
			})
			g.Go(func() (err error) {
				forecast, err = appCtx.API.CashFlowForecast(ctx, inflation)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			w, name, err := createOutput(path, transfer.KindAnalyticsReport, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			report := transfer.AnalyticsReport{
				GeneratedAt: time.Now(),
				TimeRange:   timeRange,
				Health:      &health,
				Insights:    &insights,
				Forecast:    &forecast,
			}
			if err := transfer.ExportAnalyticsReport(w, report); err != nil {
				_ = w.Close()
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}
			if name != "" {
				out.line("Report written to %s.", name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", `output file, "-" for stdout (default analytics_report_<date>.csv)`)
	cmd.Flags().StringVar(&timeRange, "range", "", "label for the period the report covers, e.g. 30d")
	cmd.Flags().Float64Var(&inflation, "inflation", defaultInflation, "monthly inflation rate for the forecast section")
	return cmd
}
