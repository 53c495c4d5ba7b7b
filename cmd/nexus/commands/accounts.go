package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"nexus/internal/domain"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List and open accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := appCtx.API.ListAccounts(ctxOf(cmd))
			if err != nil {
				return err
			}
			return printAccounts(accounts)
		},
	}
	cmd.AddCommand(accountsAddCmd())
	return protected(cmd)
}

func printAccounts(accounts []domain.Account) error {
	return out.print(accounts, func(tw table.Writer) {
		tw.AppendHeader(table.Row{"ID", "Name", "Type", "Currency", "Balance"})
		for _, a := range accounts {
			tw.AppendRow(table.Row{a.ID, a.Name, a.AccountType, a.Currency, a.Balance.StringFixed(2)})
		}
	})
}

func accountsAddCmd() *cobra.Command {
	var acc domain.NewAccount
	var balance string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Open an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc.Name = args[0]
			b, err := parseDecimal("balance", balance)
			if err != nil {
				return err
			}
			acc.Balance = b
			created, err := appCtx.API.CreateAccount(ctxOf(cmd), acc)
			if err != nil {
				return err
			}
			return printAccounts([]domain.Account{created})
		},
	}
	cmd.Flags().StringVar(&acc.AccountType, "type", "cash", "cash, bank, mobile_money or savings")
	cmd.Flags().StringVar(&acc.Currency, "currency", domain.DefaultCurrency, "currency code")
	cmd.Flags().StringVar(&balance, "balance", "0", "opening balance")
	cmd.Flags().StringVar(&acc.Color, "color", "", "display colour, e.g. #4CAF50")
	return cmd
}
