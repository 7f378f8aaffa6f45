// Package export renders figures to PNG or SVG image files.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"sliderplot/internal/canvas"
	"sliderplot/internal/figure"
	"sliderplot/internal/logging"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/sync/errgroup"
)

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

var (
	// ErrUnknownFormat is returned for formats other than png and svg.
	ErrUnknownFormat = errors.New("export: unknown format")
	// ErrEmptySurface is returned when a surface has no line with at least
	// two finite points.
	ErrEmptySurface = errors.New("export: nothing to draw")
)

// Options control the rendered image.
type Options struct {
	Format Format
	Width  int
	Height int
}

func (o Options) withDefaults(path string) (Options, error) {
	if o.Format == "" {
		o.Format = FormatFromPath(path)
	}
	if o.Format == "" {
		o.Format = PNG
	}
	if o.Format != PNG && o.Format != SVG {
		return o, fmt.Errorf("%w: %q", ErrUnknownFormat, o.Format)
	}
	if o.Width <= 0 {
		o.Width = 1024
	}
	if o.Height <= 0 {
		o.Height = 640
	}
	return o, nil
}

// FormatFromPath infers the format from a file extension, or returns "".
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG
	case ".svg":
		return SVG
	}
	return ""
}

// Paths returns one output path per surface. A single surface is written to
// path itself; several get a _1, _2, ... suffix before the extension.
func Paths(path string, n int) []string {
	if n == 1 {
		return []string{path}
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	paths := make([]string, n)
	for i := range paths {
		paths[i] = fmt.Sprintf("%s_%d%s", base, i+1, ext)
	}
	return paths
}

// Figure writes every surface of fig concurrently and returns the written
// paths in surface order.
func Figure(ctx context.Context, fig *figure.Figure, path string, opts Options) ([]string, error) {
	opts, err := opts.withDefaults(path)
	if err != nil {
		return nil, err
	}

	charts := make([]chart.Chart, len(fig.Surfaces))
	for i, s := range fig.Surfaces {
		ch, err := build(s, opts)
		if err != nil {
			return nil, fmt.Errorf("surface %d: %w", i+1, err)
		}
		charts[i] = ch
	}

	paths := Paths(path, len(charts))
	g, ctx := errgroup.WithContext(ctx)
	for i := range charts {
		ch, p := charts[i], paths[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeFile(p, ch, opts.Format)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logging.Export("wrote %d %s file(s) from %s", len(paths), opts.Format, path)
	return paths, nil
}

// Surface renders one surface to w.
func Surface(w io.Writer, s *figure.Surface, opts Options) error {
	opts, err := opts.withDefaults("")
	if err != nil {
		return err
	}
	ch, err := build(s, opts)
	if err != nil {
		return err
	}
	return render(w, ch, opts.Format)
}

func writeFile(path string, ch chart.Chart, format Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f, ch, format); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

func render(w io.Writer, ch chart.Chart, format Format) error {
	if format == SVG {
		return ch.Render(chart.SVG, w)
	}
	return ch.Render(chart.PNG, w)
}

// build copies the surface data into a chart. Non-finite points are dropped
// and lines left with fewer than two points are skipped.
func build(s *figure.Surface, opts Options) (chart.Chart, error) {
	var series []chart.Series
	labeled := false
	for _, l := range s.Lines {
		x, y := l.Data()
		xs := make([]float64, 0, len(x))
		ys := make([]float64, 0, len(y))
		for i := range x {
			if finite(x[i]) && finite(y[i]) {
				xs = append(xs, x[i])
				ys = append(ys, y[i])
			}
		}
		if len(xs) < 2 {
			logging.Get(logging.CategoryExport).Debug("skipping line %d: %d finite points", l.ID, len(xs))
			continue
		}
		labeled = labeled || l.Label != ""
		series = append(series, chart.ContinuousSeries{
			Name:    l.Label,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(l.Color),
		})
	}
	if len(series) == 0 {
		return chart.Chart{}, ErrEmptySurface
	}

	ch := chart.Chart{
		Title:      s.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: s.XLabel},
		YAxis:      chart.YAxis{Name: s.YLabel},
		Series:     series,
	}
	if labeled {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch, nil
}

func lineStyle(color int) chart.Style {
	hex := string(canvas.Category20[color%len(canvas.Category20)])
	return chart.Style{
		StrokeColor: drawing.ColorFromHex(strings.TrimPrefix(hex, "#")),
		StrokeWidth: 2,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
