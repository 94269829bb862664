package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xprlink/internal/logging"
	"xprlink/internal/relay"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		addr       string
		maxQueue   int
		maxMessage int64
		idleTTL    time.Duration
		logLevel   string
	)
	cmd := &cobra.Command{
		Use:          "linkrelay",
		Short:        "Run the wallet-link channel relay",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if idleTTL <= 0 {
				idleTTL = relay.DefaultIdleTTL
			}
			log, err := logging.New(logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			srv := relay.NewServer(relay.Config{
				MaxQueue:   maxQueue,
				MaxMessage: maxMessage,
				IdleTTL:    idleTTL,
				Logger:     log,
			})
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go srv.SweepEvery(ctx, idleTTL/2)
			return serve(ctx, log, addr, srv.Handler())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&maxQueue, "max-queue", relay.DefaultMaxQueue, "undelivered messages kept per channel")
	cmd.Flags().Int64Var(&maxMessage, "max-message", relay.DefaultMaxMessage, "largest accepted message in bytes")
	cmd.Flags().DurationVar(&idleTTL, "idle-ttl", relay.DefaultIdleTTL, "drop channels idle this long")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	return cmd
}

// serve runs h on addr until ctx is cancelled, then drains for up to five
// seconds.
func serve(ctx context.Context, log *zap.Logger, addr string, h http.Handler) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("relay listening", zap.String("addr", addr))
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.Error("relay stopped", zap.Error(err))
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return hs.Shutdown(shutdownCtx)
}
