package main

import (
	"context"
	"fmt"

	"sliderplot/internal/report"
	"sliderplot/internal/script"

	"github.com/spf13/cobra"
)

var inspectWidth int

// inspectCmd prints the parameter and surface summary
var inspectCmd = &cobra.Command{
	Use:   "inspect [script.go]",
	Short: "Show the sliders and surfaces a script would produce",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	sc, sess, err := openSession(ctx, script.NewLoader(cfg.Script.Func), args[0], cfg)
	if err != nil {
		return err
	}

	md := report.Markdown(fmt.Sprintf("%s: %s", cfg.PageTitle, sc.FuncName), sess)
	out, err := report.Render(md, inspectWidth, cfg.UI.IsDark())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
