package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/julianshen/skillbox/internal/config"
	"github.com/julianshen/skillbox/internal/install"
	"github.com/julianshen/skillbox/internal/logger"
	"github.com/julianshen/skillbox/internal/skills"
	"github.com/julianshen/skillbox/internal/tui"
)

// Hooks replaced by tests to drive the interactive paths without a terminal.
var (
	isInteractive = func() bool { return tui.IsTerminal(os.Stdin, os.Stderr) }
	newSelector   = func() install.Selector { return tui.NewTerminalSelector() }
	newPrompter   = func() tui.Prompter { return tui.HuhPrompter{} }
)

// loadConfig resolves the config path, loads the config, and applies the
// logging settings with flag overrides.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if err := logger.SetLogLevel(cfg.Log.Level); err != nil {
		return nil, err
	}
	logger.SetLogFormat(cfg.Log.Format)

	return cfg, nil
}

// addRootFlag registers --root on commands that read the skills tree.
func addRootFlag(cmd *cobra.Command) {
	cmd.Flags().String("root", "", "skills directory (default: skills next to the executable)")
}

// skillsRoot returns the skills tree from --root, the config, or the
// executable's location, in that order.
func skillsRoot(cmd *cobra.Command, cfg *config.Config) string {
	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		root = cfg.Registry.SkillsRoot
	}
	if root == "" {
		root = install.DefaultSkillsRoot()
	}
	return root
}

// registryPath places a relative registry file next to the skills root.
func registryPath(cfg *config.Config, root string) string {
	file := cfg.Registry.File
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(filepath.Dir(root), file)
}

func newRemoteClient(cmd *cobra.Command, cfg *config.Config) (*skills.RemoteClient, error) {
	baseURL, _ := cmd.Flags().GetString("registry-url")
	if baseURL == "" {
		baseURL = cfg.Registry.BaseURL
	}

	client := skills.NewRemoteClient(baseURL, nil, cfg.Registry.Timeout.Duration)
	token, err := cfg.Registry.ResolvedToken()
	if err != nil {
		return nil, fmt.Errorf("resolving registry token: %w", err)
	}
	client.SetToken(token)
	return client, nil
}

// addSourceFlags registers the flags newSource reads.
func addSourceFlags(cmd *cobra.Command) {
	addRootFlag(cmd)
	cmd.Flags().String("mode", "", "where skills come from: auto, local, remote")
	cmd.Flags().String("registry-url", "", "base URL of the remote registry")
}

// newSource picks the local tree or the remote registry. In auto mode the
// local tree wins whenever it exists.
func newSource(cmd *cobra.Command, cfg *config.Config) (install.Source, error) {
	modeFlag, _ := cmd.Flags().GetString("mode")
	if modeFlag == "" {
		modeFlag = cfg.Install.Mode
	}
	mode, err := install.ParseMode(modeFlag)
	if err != nil {
		return nil, err
	}

	root := skillsRoot(cmd, cfg)
	if mode == install.ModeAuto {
		mode = install.DetectMode(root)
	}
	logger.L.WithField("mode", mode).WithField("root", root).Debug("install source selected")

	if mode == install.ModeLocal {
		return install.NewLocalSource(root, registryPath(cfg, root)), nil
	}
	client, err := newRemoteClient(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return install.NewRemoteSource(client), nil
}
