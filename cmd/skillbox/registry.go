package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/julianshen/skillbox/internal/logger"
	"github.com/julianshen/skillbox/internal/skills"
)

// registryCmd returns the "registry" command with build and list
// subcommands.
func registryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Publish or inspect the skill registry",
	}
	cmd.AddCommand(registryBuildCmd())
	cmd.AddCommand(registryListCmd())
	return cmd
}

func registryBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Scan the skills tree and write registry.json",
		Long: `Scan <root>/<category>/<skill>/SKILL.md and write the published registry.

With --check nothing is written; the command fails when the file on disk
differs from a fresh scan.`,
		Args: cobra.NoArgs,
		RunE: runRegistryBuild,
	}
	addRootFlag(cmd)
	cmd.Flags().String("output", "", "registry file (default: registry.json next to the skills root)")
	cmd.Flags().Bool("check", false, "verify the registry file is current instead of writing it")
	return cmd
}

func runRegistryBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	root := skillsRoot(cmd, cfg)
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		path = registryPath(cfg, root)
	}
	if path == "" {
		return errors.New("no registry file configured, pass --output")
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: skills directory %q not found", skills.ErrRegistryUnavailable, root)
	}

	scanner := skills.NewScanner(root)
	w := cmd.OutOrStdout()
	check, _ := cmd.Flags().GetBool("check")

	if check {
		want, err := skills.Marshal(scanner.Scan())
		if err != nil {
			return err
		}
		logSkipped(scanner)
		have, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %w", skills.ErrIOFailure, err)
		}
		if !bytes.Equal(have, want) {
			return &exitError{code: 1, err: fmt.Errorf("%s is out of date, run \"skillbox registry build\"", path)}
		}
		fmt.Fprintf(w, "%s is up to date\n", path)
		return nil
	}

	records, err := skills.Publish(scanner, path)
	if err != nil {
		return err
	}
	logSkipped(scanner)
	fmt.Fprintf(w, "Wrote %d %s to %s\n", len(records), pluralize(len(records), "skill", "skills"), path)
	return nil
}

// logSkipped warns about documents the last scan left out.
func logSkipped(scanner *skills.Scanner) {
	if err := scanner.Err(); err != nil {
		logger.L.WithError(err).Warn("some skills were skipped")
	}
}

func registryListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [category]",
		Short: "List the skills available to install",
		Long:  "Print category, name, and description of every skill from the source install would use.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRegistryList,
	}
	addSourceFlags(cmd)
	return cmd
}

func runRegistryList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	source, err := newSource(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := logger.WithLogger(cmd.Context(), logger.L.WithField("cmd", "registry list"))
	records, err := source.Load(ctx)
	if err != nil {
		return err
	}
	registry := skills.NewRegistry(records)
	list := registry.Records()
	if len(args) == 1 {
		list = registry.InCategory(args[0])
	}

	w := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(w, "No skills found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tNAME\tDESCRIPTION")
	for _, rec := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rec.Category, rec.Name, ansi.Truncate(rec.Description, 72, "..."))
	}
	return tw.Flush()
}
