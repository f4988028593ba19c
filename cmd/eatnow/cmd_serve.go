package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kdudkov/eatnow/internal/api"
	"github.com/kdudkov/eatnow/internal/toast"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, cfg, err := opts.newApp(cmd)
			if err != nil {
				return err
			}

			defer a.Close()

			logger := slog.Default().With("logger", "serve")

			if err := a.Start(cmd.Context()); err != nil {
				if !toast.IsPresented(err) {
					return err
				}

				logger.Warn("profile refresh failed", slog.Any("error", err))
			}

			if addr == "" {
				addr = cfg.ShellAddr()
			}

			shell := api.New(a, addr)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, ctx := errgroup.WithContext(ctx)

			g.Go(shell.Listen)

			g.Go(func() error {
				a.Run(ctx)
				return nil
			})

			g.Go(func() error {
				<-ctx.Done()
				logger.Info("exiting")

				return shell.Shutdown()
			})

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, shell.addr from config by default")

	return cmd
}
