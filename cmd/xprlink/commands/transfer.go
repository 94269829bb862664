package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"xprlink/internal/domain"
	sessionsvc "xprlink/internal/services/session"
)

// transfer <to> <amount>: send tokens from the linked account.
func transferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <to> <amount>",
		Short: "Transfer XPR to another account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := sessionsvc.ParseAmount(args[1])
			if err != nil {
				return err
			}
			req := domain.TransferRequest{To: domain.AccountName(args[0]), Amount: amount}

			ctx, cancel := appCtx.WithTimeout(cmd.Context())
			defer cancel()
			res, err := appCtx.Sessions.Transfer(ctx, req)
			if err != nil {
				return err
			}

			quantity, err := appCtx.Sessions.Quantity(amount)
			if err != nil {
				return err
			}
			status := ""
			if r := res.Processed.Receipt; r != nil {
				status = r.Status
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Transaction", "To", "Quantity", "Block", "Status"})
			table.Append([]string{
				res.TransactionID,
				req.To.String(),
				quantity,
				fmt.Sprint(res.Processed.BlockNum),
				status,
			})
			table.Render()
			return nil
		},
	}
}
