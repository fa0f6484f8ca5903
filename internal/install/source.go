package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/julianshen/skillbox/internal/frontmatter"
	"github.com/julianshen/skillbox/internal/logger"
	"github.com/julianshen/skillbox/internal/skills"
	"github.com/julianshen/skillbox/internal/store"
)

// Source loads a registry and materializes its records into a destination.
type Source interface {
	Mode() Mode
	// Load returns every record the source offers.
	Load(ctx context.Context) ([]skills.Record, error)
	// Materialize places rec at <dest>/<rec.Name>, replacing whatever was
	// there, and describes the result for the ledger.
	Materialize(ctx context.Context, rec skills.Record, dest string) (store.InstallState, error)
	// Document returns the SKILL.md text of one skill and where it was read.
	Document(ctx context.Context, category, name string) (text, location string, err error)
}

// LocalSource serves a skills tree on this filesystem.
type LocalSource struct {
	// Root is the skills tree, laid out as <category>/<skill>/SKILL.md.
	Root string
	// RegistryPath is a published registry preferred over scanning. It is
	// trusted without a freshness check; a missing or corrupt file falls
	// back to a scan.
	RegistryPath string
}

// NewLocalSource creates a LocalSource.
func NewLocalSource(root, registryPath string) *LocalSource {
	return &LocalSource{Root: root, RegistryPath: registryPath}
}

// Mode implements Source.
func (s *LocalSource) Mode() Mode { return ModeLocal }

// Load implements Source.
func (s *LocalSource) Load(ctx context.Context) ([]skills.Record, error) {
	log := logger.G(ctx).WithField("root", s.Root)

	if s.RegistryPath != "" {
		records, err := skills.ReadRegistryFile(s.RegistryPath)
		switch {
		case err == nil:
			log.WithField("registry", s.RegistryPath).Debug("using published registry")
			for i := range records {
				records[i].SourcePath = filepath.Join(s.Root, records[i].Category, records[i].Name, skills.DocumentFile)
			}
			return records, nil
		case errors.Is(err, skills.ErrRegistryCorrupt):
			log.WithError(err).Warn("published registry is corrupt, scanning instead")
		default:
			log.WithError(err).Debug("no published registry, scanning")
		}
	}

	info, err := os.Stat(s.Root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: skills directory %q not found", skills.ErrRegistryUnavailable, s.Root)
	}

	scanner := skills.NewScanner(s.Root)
	records := scanner.Scan()
	if err := scanner.Err(); err != nil {
		log.WithError(err).Warn("some skills could not be read")
	}
	return records, nil
}

// Materialize links the skill directory into dest. When the platform refuses
// symlinks the directory is copied instead.
func (s *LocalSource) Materialize(ctx context.Context, rec skills.Record, dest string) (store.InstallState, error) {
	if err := checkNames(rec); err != nil {
		return store.InstallState{}, err
	}
	src := filepath.Dir(rec.SourcePath)
	if rec.SourcePath == "" {
		src = filepath.Join(s.Root, rec.Category, rec.Name)
	}
	src, err := filepath.Abs(src)
	if err != nil {
		return store.InstallState{}, fmt.Errorf("%w: %w", skills.ErrIOFailure, err)
	}
	data, err := os.ReadFile(filepath.Join(src, skills.DocumentFile))
	if err != nil {
		return store.InstallState{}, fmt.Errorf("%w: %w", skills.ErrIOFailure, err)
	}
	version := rec.Version
	if version == "" {
		version = documentVersion(string(data))
	}

	target := filepath.Join(dest, rec.Name)
	if err := replaceable(target); err != nil {
		return store.InstallState{}, err
	}

	if err := os.Symlink(src, target); err != nil {
		logger.G(ctx).WithError(err).WithField("skill", rec.Key()).Debug("symlink failed, copying")
		if err := copyDir(src, target); err != nil {
			return store.InstallState{}, fmt.Errorf("%w: copy %s: %w", skills.ErrIOFailure, rec.Key(), err)
		}
	}

	return store.InstallState{
		Name:     rec.Name,
		Category: rec.Category,
		Version:  version,
		Mode:     string(ModeLocal),
		Source:   src,
		Path:     target,
	}, nil
}

// Document implements Source.
func (s *LocalSource) Document(_ context.Context, category, name string) (string, string, error) {
	if err := skills.ValidateName(category); err != nil {
		return "", "", err
	}
	if err := skills.ValidateName(name); err != nil {
		return "", "", err
	}
	path := filepath.Join(s.Root, category, name, skills.DocumentFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", skills.ErrIOFailure, err)
	}
	return string(data), path, nil
}

// RemoteSource serves the published registry over HTTP.
type RemoteSource struct {
	Client *skills.RemoteClient
}

// NewRemoteSource creates a RemoteSource.
func NewRemoteSource(client *skills.RemoteClient) *RemoteSource {
	return &RemoteSource{Client: client}
}

// Mode implements Source.
func (s *RemoteSource) Mode() Mode { return ModeRemote }

// Load implements Source.
func (s *RemoteSource) Load(ctx context.Context) ([]skills.Record, error) {
	logger.G(ctx).WithField("url", s.Client.RegistryURL()).Debug("fetching registry")
	return s.Client.FetchRegistry(ctx)
}

// Materialize downloads the skill document into <dest>/<name>/SKILL.md.
func (s *RemoteSource) Materialize(ctx context.Context, rec skills.Record, dest string) (store.InstallState, error) {
	if err := checkNames(rec); err != nil {
		return store.InstallState{}, err
	}
	text, url, err := s.Document(ctx, rec.Category, rec.Name)
	if err != nil {
		return store.InstallState{}, err
	}
	version := rec.Version
	if version == "" {
		version = documentVersion(text)
	}

	target := filepath.Join(dest, rec.Name)
	// A link left by a local install would otherwise redirect the write
	// into the linked source tree.
	if info, err := os.Lstat(target); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		if err := os.Remove(target); err != nil {
			return store.InstallState{}, fmt.Errorf("%w: %w", skills.ErrIOFailure, err)
		}
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return store.InstallState{}, fmt.Errorf("%w: %w", skills.ErrIOFailure, err)
	}
	if err := os.WriteFile(filepath.Join(target, skills.DocumentFile), []byte(text), 0o644); err != nil {
		return store.InstallState{}, fmt.Errorf("%w: %w", skills.ErrIOFailure, err)
	}

	return store.InstallState{
		Name:     rec.Name,
		Category: rec.Category,
		Version:  version,
		Mode:     string(ModeRemote),
		Source:   url,
		Path:     target,
	}, nil
}

// Document implements Source.
func (s *RemoteSource) Document(ctx context.Context, category, name string) (string, string, error) {
	text, err := s.Client.FetchDocument(ctx, category, name)
	if err != nil {
		return "", "", err
	}
	url, _ := s.Client.DocumentURL(category, name)
	return text, url, nil
}

// documentVersion reads the version a fetched document declares.
func documentVersion(text string) string {
	doc, _ := frontmatter.Parse(text)
	if doc == nil {
		return ""
	}
	v, _ := doc.Get(skills.FieldVersion)
	return v
}

// checkNames keeps every write under dest: names come from documents and
// registry files and are not trusted.
func checkNames(rec skills.Record) error {
	if err := skills.ValidateName(rec.Category); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	if err := skills.ValidateName(rec.Name); err != nil {
		return fmt.Errorf("skill: %w", err)
	}
	return nil
}

// replaceable removes whatever occupies target so a fresh link can take its
// place.
func replaceable(target string) error {
	if _, err := os.Lstat(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %w", skills.ErrIOFailure, err)
	}
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("%w: remove %s: %w", skills.ErrIOFailure, target, err)
	}
	return nil
}

// copyDir recursively copies a directory tree from src to dst.
func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, relPath)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		return copyFile(path, target)
	})
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode())
	if err != nil {
		return fmt.Errorf("create dest: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return nil
}
