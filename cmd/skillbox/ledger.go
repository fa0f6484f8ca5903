package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/julianshen/skillbox/internal/install"
)

// destination returns --dest or the configured install destination.
func destination(cmd *cobra.Command) (string, error) {
	dest, _ := cmd.Flags().GetString("dest")
	if dest != "" {
		return dest, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Install.Destination, nil
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List skills installed in a project",
		Long:  "Display the skills recorded in the destination's install ledger.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dest, err := destination(cmd)
			if err != nil {
				return err
			}
			states, err := install.Installed(dest)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(states) == 0 {
				fmt.Fprintf(w, "No skills installed in %s.\n", dest)
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCATEGORY\tVERSION\tMODE\tINSTALLED")
			for _, s := range states {
				version := s.Version
				if version == "" {
					version = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					s.Name, s.Category, version, s.Mode, s.InstalledAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().String("dest", "", "destination directory (default: .claude/skills)")
	return cmd
}

func removeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <name>...",
		Short: "Remove installed skills",
		Long:  "Delete each named skill from the destination and drop it from the install ledger.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := destination(cmd)
			if err != nil {
				return err
			}

			var errs *multierror.Error
			for _, name := range args {
				if err := install.Remove(dest, name); err != nil {
					errs = multierror.Append(errs, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
			}
			return errs.ErrorOrNil()
		},
	}
	cmd.Flags().String("dest", "", "destination directory (default: .claude/skills)")
	return cmd
}
