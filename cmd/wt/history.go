package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/walkthrough/internal/store"
)

var (
	historyHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D7CD8")).Bold(true).Padding(0, 1)
	historyCell   = lipgloss.NewStyle().Padding(0, 1)
	historyFaint  = lipgloss.NewStyle().Foreground(lipgloss.Color("#565F89"))
)

func historyCmd(g *globalFlags) *cobra.Command {
	var (
		limit int
		last  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded walkthrough runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			path := cfg.HistoryPath()
			if path == "" {
				return fmt.Errorf("cannot determine history database path")
			}
			h, err := store.Open(path)
			if err != nil {
				return err
			}
			defer h.Close()

			var runs []store.Run
			if last {
				run, ok, err := h.LastRun()
				if err != nil {
					return err
				}
				if ok {
					runs = append(runs, run)
				}
			} else {
				runs, err = h.Runs(limit)
				if err != nil {
					return err
				}
			}
			completed, err := h.CompletedRuns()
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), runs, completed)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 = all)")
	cmd.Flags().BoolVar(&last, "last", false, "Show only the most recent run")
	return cmd
}

func printHistory(w io.Writer, runs []store.Run, completed int) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, historyFaint.Render("no walkthrough runs recorded"))
		return err
	}

	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			runDuration(r),
			fmt.Sprintf("%d/%d", r.MaxStep, r.TotalSteps),
			runStatus(r),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(historyFaint).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return historyHeader
			}
			return historyCell
		}).
		Headers("#", "Started", "Duration", "Reached", "Status").
		Rows(rows...)

	_, err := fmt.Fprintf(w, "%s\n%d completed\n", t.String(), completed)
	return err
}

func runDuration(r store.Run) string {
	if r.Open() {
		return "-"
	}
	return r.EndedAt.Sub(r.StartedAt).Round(time.Second).String()
}

func runStatus(r store.Run) string {
	switch {
	case r.Open():
		return "running"
	case r.Completed:
		return "completed"
	default:
		return "stopped"
	}
}
