package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/julianshen/skillbox/internal/install"
	"github.com/julianshen/skillbox/internal/logger"
)

func installCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [category] [skill...]",
		Short: "Install skills into a project",
		Long: `Pick a category and one or more skills, then link (local mode) or
download (remote mode) each one into the destination directory.

With no arguments both choices are made interactively. Naming the category
skips the first selector; naming skills, or passing --all, skips the second.

Local mode is used when a skills directory exists next to the executable or
at --root; otherwise the published registry is fetched.`,
		RunE: runInstall,
	}
	addSourceFlags(cmd)
	cmd.Flags().Bool("all", false, "install every skill in the category")
	cmd.Flags().BoolP("yes", "y", false, "accept the default destination without asking")
	cmd.Flags().String("dest", "", "destination directory (default: .claude/skills)")
	return cmd
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	source, err := newSource(cmd, cfg)
	if err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	yes, _ := cmd.Flags().GetBool("yes")
	dest, _ := cmd.Flags().GetString("dest")
	if dest == "" {
		dest = cfg.Install.Destination
	}

	var selector install.Selector
	if isInteractive() {
		selector = newSelector()
		if !yes && !cmd.Flags().Changed("dest") {
			if dest, err = newPrompter().Destination(dest); err != nil {
				return err
			}
		}
	}

	req := install.Request{Destination: dest, All: all}
	if len(args) > 0 {
		req.Category = args[0]
		req.Skills = args[1:]
	}

	ctx := logger.WithLogger(cmd.Context(), logger.L.WithField("cmd", "install"))
	summary, err := install.New(source, selector).Run(ctx, req)
	if err != nil {
		return err
	}
	return reportInstall(cmd.OutOrStdout(), summary)
}

// reportInstall prints the outcome. A batch in which every skill failed is
// reported as an error.
func reportInstall(w io.Writer, summary *install.Summary) error {
	if summary.Cancelled {
		fmt.Fprintln(w, "Nothing selected, no changes made.")
		return nil
	}

	for _, state := range summary.Installed {
		fmt.Fprintf(w, "  + %s -> %s\n", state.Name, state.Path)
	}
	for _, f := range summary.Failed {
		fmt.Fprintf(w, "  ! %s: %v\n", f.Record.Name, f.Err)
	}

	total := len(summary.Installed) + len(summary.Failed)
	fmt.Fprintf(w, "Installed %d of %d %s from %s into %s (%s)\n",
		len(summary.Installed), total, pluralize(total, "skill", "skills"),
		summary.Category, summary.Destination, summary.Mode)

	if len(summary.Installed) == 0 && len(summary.Failed) > 0 {
		return &exitError{code: 1, err: errors.New("no skills were installed")}
	}
	return nil
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
