package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/julianshen/skillbox/internal/output"
	"github.com/julianshen/skillbox/internal/skills"
	"github.com/julianshen/skillbox/internal/validate"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Check skill documents against the authoring rules",
		Long: `Validate a single SKILL.md, a skill directory, or a whole tree.

With no argument every document under the skills root is checked. One
pass/warn/fail line is printed per document. The command fails when any
document has an error finding; warnings never fail it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}
	addRootFlag(cmd)
	cmd.Flags().StringP("output", "o", "text", "output format: text, json, markdown")
	cmd.Flags().Bool("strict", false, "treat a scope that does not match the category as an error")
	cmd.Flags().Int("min-length", 0, "minimum description length before a warning")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := validate.Options{
		MinDescriptionLength: cfg.Validate.MinDescriptionLength,
		StrictScope:          cfg.Validate.StrictScope,
	}
	if cmd.Flags().Changed("strict") {
		opts.StrictScope, _ = cmd.Flags().GetBool("strict")
	}
	if cmd.Flags().Changed("min-length") {
		opts.MinDescriptionLength, _ = cmd.Flags().GetInt("min-length")
	}

	format, _ := cmd.Flags().GetString("output")
	formatter, err := output.NewFormatter(format)
	if err != nil {
		return err
	}
	if tf, ok := formatter.(*output.TextFormatter); ok && cmd.OutOrStdout() == os.Stdout {
		tf.Color = term.IsTerminal(int(os.Stdout.Fd()))
	}

	target := skillsRoot(cmd, cfg)
	if len(args) == 1 {
		target = args[0]
	}

	results, checkErr := validateTarget(validate.New(opts), target)
	report := output.NewReport(target, results)
	if checkErr != nil {
		var merr *multierror.Error
		if errors.As(checkErr, &merr) {
			for _, e := range merr.Errors {
				report.AddIOError(e)
			}
		} else {
			report.AddIOError(checkErr)
		}
	}

	out, err := formatter.Format(report)
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return err
	}

	if !report.Summary.OK {
		return &exitError{code: 1}
	}
	return nil
}

// validateTarget checks a document, a skill directory holding SKILL.md, or a
// tree laid out as <category>/<skill>/SKILL.md.
func validateTarget(v *validate.Validator, target string) ([]validate.Result, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", skills.ErrIOFailure, err)
	}

	if !info.IsDir() {
		res, err := v.CheckFile(target)
		if err != nil {
			return nil, err
		}
		return []validate.Result{res}, nil
	}

	doc := filepath.Join(target, skills.DocumentFile)
	if _, err := os.Stat(doc); err == nil {
		res, err := v.CheckFile(doc)
		if err != nil {
			return nil, err
		}
		return []validate.Result{res}, nil
	}
	return v.CheckTree(target)
}
