package ui

import (
	"context"
	"errors"
	"fmt"

	"sliderplot/internal/logging"
	"sliderplot/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the view on the terminal until the user quits, ctx is done or
// a recompute fails. The failure is returned.
func Run(ctx context.Context, sess *session.Session, opts Options, progOpts ...tea.ProgramOption) error {
	all := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, progOpts...)
	p := tea.NewProgram(New(sess, opts), all...)

	logging.Get(logging.CategoryUI).Info("view started for session %s", sess.ID)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run view: %w", err)
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
