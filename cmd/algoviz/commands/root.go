// SPDX-License-Identifier: MIT

// Package commands holds the algoviz cobra command tree.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/algoviz/internal/config"
	"github.com/katalvlaran/algoviz/internal/logger"
)

// flagKeys binds command-line flags to configuration keys. Flags a command
// does not define are skipped.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-json":   "log.json",
	"addr":       "server.addr",
	"frame-rate": "server.frame_rate",
	"speed":      "animation.speed",
	"step-delay": "animation.step_delay",
}

// app is the state shared by every command after the root pre-run.
type app struct {
	configPath string
	v          *viper.Viper
	cfg        *config.Config
	log        *zap.Logger
}

// NewRoot returns the algoviz root command.
func NewRoot() *cobra.Command {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:   "algoviz",
		Short: "Animated data structures and algorithms",
		Long: `algoviz animates linked lists, search trees, graph traversals and sorting.

  algoviz serve                     # websocket feed for the 3D renderer
  algoviz sort -a merge 5 2 9 1     # sorting steps as ascii charts
  algoviz tree --kind rb 10 20 30   # red-black tree layout and traversals
  algoviz graph --preset grid -n 9  # BFS and DFS tables
  algoviz config init               # write algoviz.toml with the defaults`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default: ./"+config.FileName+")")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.Bool("log-json", false, "log as JSON")

	root.AddCommand(
		newServeCmd(a),
		newSortCmd(a),
		newTreeCmd(a),
		newGraphCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	v, err := config.New(a.configPath)
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	log, err := logger.NewWithWriter(cfg.Log.Level, cfg.Log.JSON, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.v, a.cfg, a.log = v, cfg, log
	return nil
}
