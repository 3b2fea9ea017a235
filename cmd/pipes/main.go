package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lixenwraith/pipes/chime"
	"github.com/lixenwraith/pipes/config"
	"github.com/lixenwraith/pipes/glyph"
	"github.com/lixenwraith/pipes/screen"
	"github.com/lixenwraith/pipes/session"
)

// ErrNotTerminal is returned when stdout cannot host the animation
var ErrNotTerminal = errors.New("stdout is not a terminal")

type rootOptions struct {
	configPath string
	symbols    []string
	framerate  int
	colors     string
	minPipes   int
	maxPipes   int
	seed       int64
	sound      bool
	debug      bool
}

// resolve loads the config file and applies explicitly set flags on top
func (o *rootOptions) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("symbols") {
		cfg.Symbols = o.symbols
	}
	if flags.Changed("framerate") {
		cfg.Framerate = o.framerate
	}
	if flags.Changed("colors") {
		cfg.Colors = o.colors
	}
	if flags.Changed("min-pipes") {
		cfg.MinPipes = o.minPipes
	}
	if flags.Changed("max-pipes") {
		cfg.MaxPipes = o.maxPipes
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("sound") {
		cfg.Sound = o.sound
	}
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bind registers the settings flags on cmd
func (o *rootOptions) bind(cmd *cobra.Command) {
	defaults := config.Default()

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", config.DefaultPath(), "path to config file (env "+config.EnvPath+")")
	pf.StringSliceVar(&o.symbols, "symbols", defaults.Symbols, fmt.Sprintf("symbol sets, assigned round-robin %v", glyph.Names()))
	pf.StringVar(&o.colors, "colors", defaults.Colors, "color family: basic, rainbow, drab, random")
	pf.IntVar(&o.minPipes, "min-pipes", defaults.MinPipes, "minimum pipes per cohort")
	pf.IntVar(&o.maxPipes, "max-pipes", defaults.MaxPipes, "maximum pipes per cohort")
	pf.Int64Var(&o.seed, "seed", 0, "random seed (0 = time based)")

	f := cmd.Flags()
	f.IntVar(&o.framerate, "framerate", defaults.Framerate, fmt.Sprintf("frames per second %v", config.Framerates))
	f.BoolVar(&o.sound, "sound", false, "chime when a cohort is exhausted")
	f.BoolVar(&o.debug, "debug", false, "write logs to "+logDir+"/"+logFileName)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "pipes",
		Short:         "Grow random pipe mazes across the terminal",
		Long:          "Grow random pipe mazes across the terminal.\n\nKeys: q/Esc quit, p pause, space/r restart.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return runScreensaver(cmd.Context(), cfg)
		},
	}
	opts.bind(rootCmd)

	rootCmd.AddCommand(newSnapshotCmd(opts))
	rootCmd.AddCommand(newSymbolsCmd())
	rootCmd.AddCommand(newConfigCmd(opts))
	return rootCmd
}

func runScreensaver(ctx context.Context, cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	codec, err := glyph.NewCodec(cfg.Symbols...)
	if err != nil {
		return err
	}

	scr, err := screen.New()
	if err != nil {
		return err
	}
	if err := scr.Init(); err != nil {
		return err
	}
	// Restore the terminal before the panic reaches the runtime
	defer func() {
		if r := recover(); r != nil {
			scr.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mPIPES CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer scr.Fini()

	sess, err := session.New(session.Config{
		MinPipes: cfg.MinPipes,
		MaxPipes: cfg.MaxPipes,
		Family:   cfg.Family(),
		Seed:     cfg.Seed,
	}, scr, codec)
	if err != nil {
		return err
	}

	if cfg.Sound {
		c, err := chime.New(cfg.Volume)
		if err != nil {
			// Non-fatal, the animation runs silent
			logrus.WithError(err).Warn("audio initialization failed")
		} else {
			defer c.Close()
			sess.OnExhausted(func(session.Stats) { c.Play() })
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logrus.WithFields(logrus.Fields{
		"framerate": cfg.Framerate,
		"symbols":   cfg.Symbols,
		"colors":    cfg.Colors,
	}).Info("pipes started")
	return sess.Run(ctx, scr, cfg.Interval())
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "pipes: %v\n", err)
		os.Exit(1)
	}
}
