package commands

import (
	"errors"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"nexus/internal/domain"
	"nexus/internal/services/transfer"
)

func transactionsCmd() *cobra.Command {
	var f domain.TransactionFilter
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List, record, export and import transactions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := appCtx.API.ListTransactions(ctxOf(cmd), f)
			if err != nil {
				return err
			}
			return printTransactions(txs)
		},
	}
	cmd.Flags().StringVar(&f.StartDate, "from", "", "start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.EndDate, "to", "", "end date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.Category, "category", "", "only this category")
	cmd.Flags().IntVar(&f.Limit, "limit", 0, "maximum rows (backend default 100)")

	cmd.AddCommand(transactionsAddCmd(), transactionsExportCmd(), transactionsImportCmd())
	return protected(cmd)
}

func printTransactions(txs []domain.Transaction) error {
	return out.print(txs, func(tw table.Writer) {
		tw.AppendHeader(table.Row{"ID", "Date", "Description", "Category", "Amount", "Currency"})
		for _, tx := range txs {
			tw.AppendRow(table.Row{tx.ID, tx.TransactionDate.Date(), tx.Description, tx.Category, tx.Amount.StringFixed(2), tx.Currency})
		}
	})
}

func transactionsAddCmd() *cobra.Command {
	var tx domain.NewTransaction
	var amount string
	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Record a transaction; negative amounts are expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx.Description = args[0]
			a, err := parseDecimal("amount", amount)
			if err != nil {
				return err
			}
			tx.Amount = a
			created, err := appCtx.API.CreateTransaction(ctxOf(cmd), tx)
			if err != nil {
				return err
			}
			if err := printTransactions([]domain.Transaction{created.Transaction}); err != nil {
				return err
			}
			if p := created.CategoryPrediction; p != nil {
				out.line("Category %s (confidence %.0f%%). New balance %s.", p.Category, p.Confidence*100, created.NewBalance.StringFixed(2))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "amount, e.g. -12.50")
	cmd.Flags().Int64Var(&tx.AccountID, "account", 0, "account id")
	cmd.Flags().StringVar(&tx.Currency, "currency", "", "currency code (default USD)")
	cmd.Flags().StringVar(&tx.TransactionDate, "date", "", "transaction date, YYYY-MM-DD (default now)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func transactionsExportCmd() *cobra.Command {
	var path string
	var f domain.TransactionFilter
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write transactions to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			txs, err := appCtx.API.ListTransactions(ctx, f)
			if err != nil {
				return err
			}
			accounts, err := appCtx.API.ListAccounts(ctx)
			if err != nil {
				return err
			}

			w, name, err := createOutput(path, transfer.KindTransactions, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := transfer.ExportTransactions(w, txs, accounts); err != nil {
				_ = w.Close()
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}
			if name != "" {
				out.line("Exported %d transactions to %s.", len(txs), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", `output file, "-" for stdout (default transactions_<date>.csv)`)
	cmd.Flags().StringVar(&f.StartDate, "from", "", "start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.EndDate, "to", "", "end date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.Category, "category", "", "only this category")
	cmd.Flags().IntVar(&f.Limit, "limit", 0, "maximum rows (backend default 100)")
	return cmd
}

func transactionsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Create transactions from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			report, err := appCtx.Transactions.Import(ctxOf(cmd), in)
			if err != nil {
				return err
			}
			return printReport(report)
		},
	}
}

// printReport shows an import outcome. A partial import is an error so that
// scripts notice it.
func printReport(r transfer.Report) error {
	view := struct {
		Imported    int      `json:"imported"`
		Failed      int      `json:"failed"`
		Skipped     int      `json:"skipped"`
		Interrupted bool     `json:"interrupted"`
		Errors      []string `json:"errors,omitempty"`
	}{Imported: r.Imported, Failed: r.Failed, Skipped: r.Skipped, Interrupted: r.Interrupted}
	for _, e := range r.Errors {
		view.Errors = append(view.Errors, e.Error())
	}

	if err := out.print(view, func(tw table.Writer) {
		tw.AppendHeader(table.Row{"Line", "Error"})
		for _, e := range r.Errors {
			tw.AppendRow(table.Row{e.Line, e.Err.Error()})
		}
		tw.AppendFooter(table.Row{"", r.String()})
	}); err != nil {
		return err
	}
	if r.Partial() {
		return errors.New(r.String())
	}
	return nil
}
