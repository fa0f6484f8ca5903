package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/julianshen/skillbox/internal/frontmatter"
	"github.com/julianshen/skillbox/internal/logger"
	"github.com/julianshen/skillbox/internal/skills"
	"github.com/julianshen/skillbox/internal/tui"
)

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <category>/<name>",
		Short: "Render a skill document",
		Long: `Print a skill's metadata and body, rendered for the terminal.

The document is read from the local skills tree or fetched from the remote
registry, following the same rule as install.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runShow,
	}
	addSourceFlags(cmd)
	cmd.Flags().Bool("raw", false, "print the document without rendering")
	cmd.Flags().String("style", "", "glamour style: dark, light, notty (default: detect)")
	cmd.Flags().Int("width", 80, "word wrap width")
	return cmd
}

// splitSkillRef accepts "category/name" or "category name".
func splitSkillRef(args []string) (string, string, error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}
	category, name, ok := strings.Cut(args[0], "/")
	if !ok || category == "" || name == "" {
		return "", "", fmt.Errorf("expected <category>/<name>, got %q", args[0])
	}
	return category, name, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	category, name, err := splitSkillRef(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	source, err := newSource(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := logger.WithLogger(cmd.Context(), logger.L.WithField("cmd", "show"))
	text, location, err := source.Document(ctx, category, name)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		_, err := fmt.Fprint(w, text)
		return err
	}

	doc, err := frontmatter.Parse(text)
	if doc == nil {
		return fmt.Errorf("%s: %w", location, err)
	}
	if err != nil {
		logger.G(ctx).WithError(err).Warn("document is malformed, showing what could be read")
	}
	rec := skills.NewRecord(category, location, doc)

	style, _ := cmd.Flags().GetString("style")
	if style == "" {
		style = "notty"
		if cmd.OutOrStdout() == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())) {
			style = "dark"
		}
	}
	width, _ := cmd.Flags().GetInt("width")

	renderer, err := tui.NewMarkdownRenderer(style, width)
	if err != nil {
		return err
	}
	rendered, err := renderer.RenderSkill(rec, doc.Body)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}
