package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"xprlink/internal/app"
	"xprlink/internal/logging"
)

var (
	configFile string
	appCtx     *app.App
	restored   bool
)

// Execute runs the xprlink root command and prints any error to stderr.
func Execute() error {
	root := &cobra.Command{
		Use:           "xprlink",
		Short:         "Link an XPR wallet and send tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(); err != nil {
				return err
			}
			cfg, err := app.Get()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
				return err
			}

			log, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			appCtx, err = app.New(cfg, cmd.OutOrStdout(), log)
			if err != nil {
				return err
			}

			ctx, cancel := appCtx.WithTimeout(cmd.Context())
			defer cancel()
			restored, err = appCtx.Restore(ctx)
			if err != nil {
				return fmt.Errorf("restore session: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appCtx != nil {
				_ = appCtx.Log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.String("home", "", "config dir (default ~/.xprlink)")
	flags.StringVar(&configFile, "config", "", "config file (default <home>/config.yaml)")
	flags.String("relay", "", "relay base URL (e.g. http://127.0.0.1:8080)")
	flags.StringP("passphrase", "p", "", "passphrase to seal the session file")
	flags.String("log-level", "", "debug, info, warn or error")

	_ = viper.BindPFlag("home", flags.Lookup("home"))
	_ = viper.BindPFlag("relay_url", flags.Lookup("relay"))
	_ = viper.BindPFlag("passphrase", flags.Lookup("passphrase"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))

	root.AddCommand(loginCmd(), logoutCmd(), transferCmd(), statusCmd())

	err := root.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		if appCtx != nil {
			appCtx.Log.Debug("command failed", zap.Error(err))
		}
	}
	return err
}

// loadConfig layers defaults, the config file and XPRLINK_* variables into
// the global viper instance. Flags bound in Execute take precedence.
func loadConfig() error {
	app.SetDefaults(viper.GetViper())

	viper.SetEnvPrefix("xprlink")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	home := viper.GetString("home")
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		home = filepath.Join(dir, ".xprlink")
		viper.SetDefault("home", home)
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(home)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}
