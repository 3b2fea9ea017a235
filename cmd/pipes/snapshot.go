package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lixenwraith/pipes/config"
	"github.com/lixenwraith/pipes/glyph"
	"github.com/lixenwraith/pipes/grid"
	"github.com/lixenwraith/pipes/render"
	"github.com/lixenwraith/pipes/session"
)

const (
	fallbackCols = 80
	fallbackRows = 24
)

func newSnapshotCmd(root *rootOptions) *cobra.Command {
	var cols, rows int
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Grow one cohort without a terminal and print the final grid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.resolve(cmd)
			if err != nil {
				return err
			}
			if cols <= 0 || rows <= 0 {
				cols, rows = terminalSize()
			}
			stats, err := writeSnapshot(cmd.OutOrStdout(), cfg, cols, rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d pipes (%s), %d/%d cells claimed\n",
				stats.Cohort, stats.Family, stats.Claimed, stats.Area)
			return nil
		},
	}
	cmd.Flags().IntVar(&cols, "cols", 0, "grid width (default terminal width or 80)")
	cmd.Flags().IntVar(&rows, "rows", 0, "grid height (default terminal height or 24)")
	return cmd
}

func terminalSize() (int, int) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return fallbackCols, fallbackRows
}

// writeSnapshot runs one cohort on an in-memory surface until every walk
// is stuck and writes the painted rows to w
func writeSnapshot(w io.Writer, cfg *config.Config, cols, rows int) (session.Stats, error) {
	codec, err := glyph.NewCodec(cfg.Symbols...)
	if err != nil {
		return session.Stats{}, err
	}

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	buf := render.NewBuffer(cols, rows)
	sess, err := session.New(session.Config{
		MinPipes: cfg.MinPipes,
		MaxPipes: cfg.MaxPipes,
		Family:   cfg.Family(),
		Seed:     cfg.Seed,
		Logger:   quiet,
	}, buf, codec)
	if err != nil {
		return session.Stats{}, err
	}

	var (
		lines   []string
		stats   session.Stats
		gridErr error
	)
	sess.OnExhausted(func(st session.Stats) {
		lines = buf.Lines()
		stats = st
		gridErr = sess.Grid().Verify()
	})

	// Each live frame claims at least one cell
	limit := cols*rows + 1
	for frame := 0; lines == nil; frame++ {
		if frame > limit {
			return session.Stats{}, fmt.Errorf("cohort still alive after %d frames", limit)
		}
		sess.Frame()
	}
	if gridErr != nil {
		return stats, fmt.Errorf("inconsistent grid: %w", gridErr)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func newSymbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "List symbol sets and their glyph for every N,E,S,W edge mask",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-8s", "NESW")
			for m := grid.Mask(0); m < 16; m++ {
				fmt.Fprintf(out, " %s", m.Key())
			}
			fmt.Fprintln(out)

			for _, name := range glyph.Names() {
				set, err := glyph.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-8s", name)
				for m := grid.Mask(0); m < 16; m++ {
					fmt.Fprintf(out, " %4c", set.Glyph(m))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
