package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			srv, err := NewServer(cfg)
			if err != nil {
				return err
			}

			if err := srv.Start(); err != nil {
				srv.Shutdown(cfg.ShutdownTimeoutDuration())
				return err
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			<-sigChan

			if err := srv.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
				return err
			}
			srv.infra.Logger.Info("mariner stopped")
			return nil
		},
	}
}
