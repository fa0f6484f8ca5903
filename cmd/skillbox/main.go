// cmd/skillbox/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/julianshen/skillbox/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configPath string
	logLevel   string
	logFormat  string
)

// exitInterrupted is the conventional status for a run stopped by SIGINT.
const exitInterrupted = 130

// exitError carries a specific exit status out of a command. A nil err means
// the command already reported the problem on its own output.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func versionString() string {
	return fmt.Sprintf("skillbox %s (commit: %s, built: %s)", version, commit, date)
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skillbox",
		Short: "Install, validate, and author assistant skills",
		Long: `skillbox manages a library of SKILL.md documents grouped by technology.

Install skills into a project, validate documents before publishing them,
scaffold new skills, and rebuild the published registry.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: ~/.config/skillbox/config.toml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text, json")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}

	cmd.AddCommand(versionCmd)
	cmd.AddCommand(installCmd())
	cmd.AddCommand(validateCmd())
	cmd.AddCommand(newCmd())
	cmd.AddCommand(registryCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(removeCmd())
	cmd.AddCommand(showCmd())

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err, os.Stderr))
}

// exitCode maps a command error to a process status, printing it once.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, tui.ErrInterrupted) {
		fmt.Fprintln(stderr, "Interrupted.")
		return exitInterrupted
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", ee.err)
		}
		return ee.code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
