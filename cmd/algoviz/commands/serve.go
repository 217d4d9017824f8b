// SPDX-License-Identifier: MIT

package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/algoviz/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve engine frames and accept commands over a websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(a.serverConfig(), a.log).Run(ctx)
		},
	}
	f := cmd.Flags()
	f.String("addr", server.DefaultAddr, "listen address")
	f.Float64("frame-rate", 60, "frames per second per topic, 0 for unthrottled")
	f.Float64("speed", 1, "initial animation speed multiplier")
	f.Duration("step-delay", 0, "base pause between animation steps, 0 for each engine's default")
	return cmd
}

func (a *app) serverConfig() server.Config {
	fr := a.cfg.Server.FrameRate
	if fr <= 0 {
		fr = -1
	}
	return server.Config{
		Addr:      a.cfg.Server.Addr,
		FrameRate: fr,
		Speed:     a.cfg.Animation.Speed,
		StepDelay: a.cfg.Animation.StepDelay,
	}
}
