package skills

import "errors"

var (
	// ErrInvalidName reports a skill or category name that fails NamePattern.
	ErrInvalidName = errors.New("invalid name")
	// ErrAlreadyExists reports a scaffold target that already has a document.
	ErrAlreadyExists = errors.New("skill already exists")
	// ErrRegistryCorrupt reports a registry artifact with an unexpected shape.
	ErrRegistryCorrupt = errors.New("registry corrupt")
	// ErrRegistryUnavailable reports that no registry source could be loaded.
	ErrRegistryUnavailable = errors.New("registry unavailable")
	// ErrIOFailure reports a file or network failure unrelated to content.
	ErrIOFailure = errors.New("i/o failure")
)
