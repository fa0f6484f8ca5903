package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julianshen/skillbox/internal/logger"
	"github.com/julianshen/skillbox/internal/scaffold"
	"github.com/julianshen/skillbox/internal/tui"
	"github.com/julianshen/skillbox/internal/validate"
)

func newCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [category] [name]",
		Short: "Scaffold a new skill",
		Long: `Create <root>/<category>/<name>/SKILL.md from the standard template and
refresh the published registry.

Anything not given as an argument or flag is asked for interactively:
the category (an existing one or a new one), the skill name, a one-line
description, and the condition that should trigger the skill.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runNew,
	}
	addRootFlag(cmd)
	cmd.Flags().String("description", "", "what the skill does")
	cmd.Flags().String("trigger", "", `condition completing "Trigger: When ..."`)
	cmd.Flags().String("version", "", "initial version (default: "+scaffold.DefaultVersion+")")
	cmd.Flags().Bool("force", false, "overwrite an existing SKILL.md")
	cmd.Flags().Bool("no-registry", false, "do not refresh the registry file")
	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root := skillsRoot(cmd, cfg)
	regPath := registryPath(cfg, root)
	if skip, _ := cmd.Flags().GetBool("no-registry"); skip {
		regPath = ""
	}
	v := validate.New(validate.Options{
		MinDescriptionLength: cfg.Validate.MinDescriptionLength,
		StrictScope:          cfg.Validate.StrictScope,
	})
	s := scaffold.New(root, regPath, v)

	answers := tui.ScaffoldAnswers{}
	if len(args) > 0 {
		answers.Category = args[0]
	}
	if len(args) > 1 {
		answers.Name = args[1]
	}
	answers.Description, _ = cmd.Flags().GetString("description")
	answers.Trigger, _ = cmd.Flags().GetString("trigger")

	if answers.Category == "" || answers.Name == "" {
		if !isInteractive() {
			return fmt.Errorf("category and name are required: %w", tui.ErrNotTerminal)
		}
		if answers, err = newPrompter().Scaffold(s.Categories(), answers); err != nil {
			return err
		}
	}

	fields := scaffold.Fields{Description: answers.Description, Trigger: answers.Trigger}
	fields.Version, _ = cmd.Flags().GetString("version")
	fields.Overwrite, _ = cmd.Flags().GetBool("force")

	ctx := logger.WithLogger(cmd.Context(), logger.L.WithField("cmd", "new"))
	res, err := s.Create(ctx, answers.Category, answers.Name, fields)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Created skill %q in %s\n", res.Record.Key(), res.Path)
	for _, f := range res.Validation.Findings {
		fmt.Fprintf(w, "  %s: %s (%s)\n", f.Severity, f.Message, f.Rule)
	}
	switch {
	case res.Published:
		fmt.Fprintf(w, "Updated %s\n", regPath)
	case res.PublishErr != nil:
		fmt.Fprintf(w, "Registry not updated: %v\n", res.PublishErr)
	}
	return nil
}
