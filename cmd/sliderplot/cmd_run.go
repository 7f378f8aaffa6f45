package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sliderplot/internal/config"
	"sliderplot/internal/figure"
	"sliderplot/internal/logging"
	"sliderplot/internal/script"
	"sliderplot/internal/session"
	"sliderplot/internal/ui"

	"github.com/spf13/cobra"
)

var watch bool

// runCmd opens the interactive view
var runCmd = &cobra.Command{
	Use:   "run [script.go]",
	Short: "Open the interactive view for a plot script",
	Long: `Loads the plot function, builds one slider per parameter and draws the
result. Arrow keys move the focused slider, r resets every slider, q quits.

With --watch (or script.watch in the config) the script is reloaded when it
changes on disk, as long as its parameter names stay the same.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlot,
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runPlot(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	loader := script.NewLoader(cfg.Script.Func)
	logging.Script("looking up %s in %s", loader.FuncName(), args[0])
	sc, sess, err := openSession(ctx, loader, args[0], cfg)
	if err != nil {
		return err
	}

	if !cfg.Show {
		fmt.Fprintf(cmd.OutOrStdout(), "built %s: %d parameters, %d surfaces (show disabled)\n",
			sc.Path, len(sess.Params()), len(sess.Figure().Surfaces))
		return nil
	}

	opts := ui.Options{
		PageTitle:        cfg.PageTitle,
		Theme:            ui.ThemeFor(cfg.UI.IsDark()),
		SliderPanelRatio: cfg.UI.SliderPanelRatio,
		ShowHelp:         cfg.UI.ShowHelp,
	}

	if watch || cfg.Script.Watch {
		debounce, err := time.ParseDuration(cfg.Script.Debounce)
		if err != nil {
			debounce = script.DefaultDebounce
		}
		w, err := script.NewWatcher(sc.Path, loader, debounce)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
		opts.Reloads = w.Reloads()
	}

	return ui.Run(ctx, sess, opts)
}

// openSession loads a script and builds its session with the configured
// bounds, titles and axis labels.
func openSession(ctx context.Context, loader *script.Loader, path string, c *config.Config) (*script.Script, *session.Session, error) {
	sc, err := loader.Load(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	bounds := make([]session.Bound, len(sc.Names))
	for i := range bounds {
		b := c.BoundFor(i)
		bounds[i] = session.Bound{Min: b.Min, Max: b.Max}
	}

	sess, err := session.New(sc.Func, sc.Params(), session.Options{
		Bounds: bounds,
		Figure: figureOptions(c),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", sc.Path, err)
	}
	logging.Session("session %s bound to %s (%s)", sess.ID, sc.Path, sc.FuncName)
	return sc, sess, nil
}

func figureOptions(c *config.Config) figure.Options {
	axes := make([]figure.AxisLabels, len(c.AxesLabels))
	for i, pair := range c.AxesLabels {
		if len(pair) > 0 {
			axes[i].X = pair[0]
		}
		if len(pair) > 1 {
			axes[i].Y = pair[1]
		}
	}
	return figure.Options{
		Titles:      c.Titles,
		AxesLabels:  axes,
		Arrangement: figure.Arrangement(c.Layout),
	}
}
