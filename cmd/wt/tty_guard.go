package main

import (
	"os"
)

// init runs before Bubble Tea or Lipgloss touch the terminal.
//
// Termenv probes the terminal background with OSC/DSR queries the first time
// a style is rendered. Commands that only print (export, history, version)
// set CI=1 so those queries are never written to piped output.
func init() {
	if os.Getenv("CI") != "" {
		return
	}
	if !shouldSuppressTTYQueries(os.Args[1:], os.Getenv("WT_TEST_MODE") != "") {
		return
	}
	_ = os.Setenv("CI", "1")
}

func shouldSuppressTTYQueries(args []string, envTest bool) bool {
	if envTest {
		return true
	}
	for _, arg := range args {
		switch arg {
		case "--version", "-v", "--help", "-h", "version", "export", "history", "help":
			return true
		}
	}
	return false
}
