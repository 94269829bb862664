package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"xprlink/internal/crypto"
	"xprlink/internal/walletlink"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the linked account",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, ok := appCtx.Sessions.Current()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			auth := sess.Auth()

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Field", "Value"})
			table.Append([]string{"Actor", auth.Actor.String()})
			table.Append([]string{"Permission", auth.Permission.String()})
			table.Append([]string{"Chain", sess.ChainID().String()})
			if ws, ok := sess.(*walletlink.Session); ok {
				if name := ws.WalletName(); name != "" {
					table.Append([]string{"Wallet", name})
				}
				table.Append([]string{"Key fingerprint", crypto.Fingerprint(ws.RequestKey())})
			}
			table.Render()
			return nil
		},
	}
}
