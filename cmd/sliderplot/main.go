package main

import (
	"fmt"
	"os"

	"sliderplot/internal/config"
	"sliderplot/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Loaded in PersistentPreRunE
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sliderplot [script.go]",
	Short: "Interactive terminal plots driven by one slider per parameter",
	Long: `sliderplot loads a Go plot function from a script, calls it once with
the initial parameter values and draws the curves it returns. Every parameter
gets a slider; moving one recomputes the function and redraws in place.

A script is a package main file:

  package main

  import "math"

  var Defaults = map[string]float64{"frequency": math.Pi}

  func Plot(amplitude, frequency, phase float64) [][]float64 { ... }

Run with a script argument to open the interactive view.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if verbose {
			cfg.Logging.DebugMode = true
			cfg.Logging.Level = "debug"
		}
		if err := logging.Initialize(cfg.Logging.Logger()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.Boot("sliderplot starting: command=%s config=%q", cmd.Name(), configPath)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runPlot(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".sliderplot.yaml", "Config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the script when it changes")
	runCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the script when it changes")

	inspectCmd.Flags().IntVar(&inspectWidth, "width", 80, "Word wrap width")

	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Output image path (required)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "png or svg (default: from extension)")
	exportCmd.Flags().IntVar(&exportWidth, "width", 0, "Image width in pixels")
	exportCmd.Flags().IntVar(&exportHeight, "height", 0, "Image height in pixels")
	exportCmd.Flags().StringArrayVar(&exportSets, "set", nil, "Parameter value as name=value (repeatable)")
	_ = exportCmd.MarkFlagRequired("output")

	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
