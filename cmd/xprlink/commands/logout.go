package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the wallet session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, ok := appCtx.Sessions.Current()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			auth := sess.Auth()

			ctx, cancel := appCtx.WithTimeout(cmd.Context())
			defer cancel()
			if err := appCtx.Sessions.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged out %s\n", auth)
			return nil
		},
	}
}
