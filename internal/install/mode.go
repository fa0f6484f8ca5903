package install

import (
	"fmt"
	"os"
	"path/filepath"
)

// Mode selects where the registry and skill documents come from.
type Mode string

const (
	// ModeAuto picks ModeLocal when a skills tree is found, ModeRemote otherwise.
	ModeAuto Mode = "auto"
	// ModeLocal scans or reads a skills tree on this filesystem and links it.
	ModeLocal Mode = "local"
	// ModeRemote fetches the registry and documents over HTTP.
	ModeRemote Mode = "remote"
)

// ParseMode validates s. The empty string means ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeLocal, ModeRemote:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown install mode %q (want auto, local, or remote)", s)
	}
}

// DetectMode returns ModeLocal when skillsRoot is an existing directory.
func DetectMode(skillsRoot string) Mode {
	if skillsRoot == "" {
		return ModeRemote
	}
	info, err := os.Stat(skillsRoot)
	if err != nil || !info.IsDir() {
		return ModeRemote
	}
	return ModeLocal
}

// DefaultSkillsRoot returns the "skills" directory next to the running
// executable, with symlinks resolved, or "" if the executable cannot be
// located.
func DefaultSkillsRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "skills")
}
