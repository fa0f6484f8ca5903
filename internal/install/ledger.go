package install

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/julianshen/skillbox/internal/skills"
	"github.com/julianshen/skillbox/internal/store"
)

// ErrNotInstalled reports a removal of a skill the destination does not hold.
var ErrNotInstalled = errors.New("skill not installed")

// Installed returns the ledger entries of dest. A destination without a
// ledger has no recorded installs.
func Installed(dest string) ([]store.InstallState, error) {
	path := filepath.Join(dest, store.FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", skills.ErrIOFailure, err)
	}

	s, err := store.NewStore(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.ListInstalls()
}

// Remove deletes <dest>/<name> and its ledger entry. Either one existing is
// enough; ErrNotInstalled is returned when neither does.
func Remove(dest, name string) error {
	if err := skills.ValidateName(name); err != nil {
		return err
	}

	target := filepath.Join(dest, name)
	_, statErr := os.Lstat(target)
	onDisk := statErr == nil
	if onDisk {
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("%w: %w", skills.ErrIOFailure, err)
		}
	}

	recorded := false
	path := filepath.Join(dest, store.FileName)
	if _, err := os.Stat(path); err == nil {
		s, err := store.NewStore(path)
		if err != nil {
			return err
		}
		defer s.Close()
		if recorded, err = s.DeleteInstall(name); err != nil {
			return err
		}
	}

	if !onDisk && !recorded {
		return fmt.Errorf("%s: %w", name, ErrNotInstalled)
	}
	return nil
}
