package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/armlift/canvas"
	"github.com/katalvlaran/armlift/config"
)

// app carries the state shared by every subcommand.
type app struct {
	cfgPath     string
	logLevel    string
	metricsAddr string

	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "armlift",
		Short:        "Lift pixel tours into 8-arm configuration paths",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "path to a YAML or JSON configuration file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during lift")

	root.AddCommand(
		newLiftCmd(a),
		newScoreCmd(a),
		newPatchCmd(a),
		newReverseCmd(a),
		newSplitCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.metricsAddr != "" {
		cfg.Metrics.Addr = a.metricsAddr
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = slog.New(cfg.Log.Handler(cmd.ErrOrStderr()))
	return nil
}

// image loads the CSV image at path, or a blank one when path is empty.
func (a *app) image(path string) (*canvas.Image, error) {
	if path == "" {
		return canvas.New(), nil
	}
	img, err := canvas.LoadFile(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("image loaded", "path", path)
	return img, nil
}
