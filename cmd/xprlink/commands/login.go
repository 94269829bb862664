package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	var relink bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Link a wallet and keep the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if restored && !relink {
				sess, _ := appCtx.Sessions.Current()
				fmt.Fprintf(out, "Already logged in as %s\n", sess.Auth())
				return nil
			}

			ctx, cancel := appCtx.WithTimeout(cmd.Context())
			defer cancel()
			if err := appCtx.Sessions.Login(ctx, false); err != nil {
				return err
			}
			sess, _ := appCtx.Sessions.Current()
			fmt.Fprintf(out, "Logged in as %s\n", sess.Auth())
			return nil
		},
	}
	cmd.Flags().BoolVar(&relink, "relink", false, "link a wallet even if a session was restored")
	return cmd
}
