// Command vlist-demo showcases the vlist components: a filterable list,
// a tree view, and a sticky log pane that follows its tail.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

func main() {
	var (
		itemCount int
		wrap      bool
		logFile   string
	)

	rootCmd := &cobra.Command{
		Use:   "vlist-demo",
		Short: "Showcase the vlist list, tree, and log components",
		Example: `
# Run with defaults
vlist-demo

# More items, wrapped labels
vlist-demo --items 500 --wrap
  `,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(logFile); err != nil {
				return err
			}
			slog.Info("Starting demo", "items", itemCount, "wrap", wrap)

			p := tea.NewProgram(
				newModel(itemCount, wrap),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("demo exited with error: %w", err)
			}
			return nil
		},
	}

	rootCmd.Flags().IntVar(&itemCount, "items", 100, "number of list items to generate")
	rootCmd.Flags().BoolVar(&wrap, "wrap", false, "wrap item content to the pane width")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write debug logs to this file")

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

// setupLogging routes slog through charm's logger. Without a log file
// everything above warning still reaches stderr, which bubbletea keeps
// off-screen until exit.
func setupLogging(path string) error {
	w := os.Stderr
	level := log.WarnLevel
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	slog.SetDefault(slog.New(logger))
	return nil
}
