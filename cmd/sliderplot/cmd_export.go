package main

import (
	"fmt"
	"strconv"
	"strings"

	"sliderplot/internal/export"
	"sliderplot/internal/script"
	"sliderplot/internal/session"

	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportFormat string
	exportWidth  int
	exportHeight int
	exportSets   []string
)

// exportCmd renders the figure to image files
var exportCmd = &cobra.Command{
	Use:   "export [script.go]",
	Short: "Render the plot to PNG or SVG",
	Long: `Builds the figure and writes it as an image. Figures with several
surfaces are written to one file per surface (out_1.png, out_2.png, ...).

Example:
  sliderplot export wave.go -o wave.svg --set frequency=2 --set phase=0.5`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	_, sess, err := openSession(ctx, script.NewLoader(cfg.Script.Func), args[0], cfg)
	if err != nil {
		return err
	}
	if err := applySets(sess, exportSets); err != nil {
		return err
	}

	opts := export.Options{
		Format: export.Format(strings.ToLower(exportFormat)),
		Width:  exportWidth,
		Height: exportHeight,
	}
	if opts.Format == "" && export.FormatFromPath(exportOut) == "" {
		opts.Format = export.Format(cfg.Export.Format)
	}
	if opts.Width == 0 {
		opts.Width = cfg.Export.Width
	}
	if opts.Height == 0 {
		opts.Height = cfg.Export.Height
	}

	paths, err := export.Figure(ctx, sess.Figure(), exportOut, opts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

// applySets moves sliders from name=value assignments.
func applySets(sess *session.Session, sets []string) error {
	for _, set := range sets {
		name, raw, ok := strings.Cut(set, "=")
		if !ok {
			return fmt.Errorf("--set %q: want name=value", set)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("--set %q: %w", set, err)
		}
		found := false
		for _, sl := range sess.Sliders() {
			if sl.Name == strings.TrimSpace(name) {
				if err := sl.Set(v); err != nil {
					return err
				}
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("--set %q: no parameter named %q", set, name)
		}
	}
	return nil
}
