// Package install drives the interactive flow that copies skills from a
// registry into a project: load the registry, pick a category, pick skills,
// then link or download each one into the destination directory.
package install

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianshen/skillbox/internal/logger"
	"github.com/julianshen/skillbox/internal/skills"
	"github.com/julianshen/skillbox/internal/store"
	"github.com/julianshen/skillbox/internal/tui"
)

// DefaultDestination is where skills land when the caller names no directory.
var DefaultDestination = filepath.Join(".claude", "skills")

// ErrNotFound reports a category or skill named on the command line that the
// registry does not contain.
var ErrNotFound = errors.New("not found in registry")

// Selector picks items for the installer. tui.TerminalSelector is the
// interactive implementation.
type Selector interface {
	Select(ctx context.Context, title string, items []tui.Item, mode tui.Mode) ([]int, error)
}

// Request narrows a run. Zero values mean "ask".
type Request struct {
	Category string
	Skills   []string
	// All installs every skill in the category without asking.
	All         bool
	Destination string
}

// Failure is one skill that could not be installed.
type Failure struct {
	Record skills.Record
	Err    error
}

// Summary describes what a run did.
type Summary struct {
	Mode        Mode
	Category    string
	Destination string
	Installed   []store.InstallState
	Failed      []Failure
	// Replaced counts installed skills the ledger already held.
	Replaced int
	// Cancelled is set when a selection step came back empty.
	Cancelled bool
}

// Installer runs the load, select, and materialize steps against one Source.
type Installer struct {
	source   Source
	selector Selector
}

// New creates an Installer. selector may be nil when every Request names its
// category and skills explicitly.
func New(source Source, selector Selector) *Installer {
	return &Installer{source: source, selector: selector}
}

// Run executes one install. A cancelled selection returns a Summary with
// Cancelled set and no error. A failure on one skill is recorded in the
// Summary and the rest of the batch still runs.
func (in *Installer) Run(ctx context.Context, req Request) (*Summary, error) {
	dest := req.Destination
	if dest == "" {
		dest = DefaultDestination
	}
	summary := &Summary{Mode: in.source.Mode(), Destination: dest}
	log := logger.G(ctx).WithField("mode", summary.Mode)

	records, err := in.load(ctx, dest)
	if err != nil {
		return nil, err
	}
	registry := skills.NewRegistry(records)
	if registry.Len() == 0 {
		return nil, fmt.Errorf("%w: registry is empty", skills.ErrRegistryUnavailable)
	}
	log.WithField("skills", registry.Len()).Debug("registry loaded")

	category, err := in.chooseCategory(ctx, registry, req.Category)
	if err != nil {
		return nil, err
	}
	if category == "" {
		summary.Cancelled = true
		return summary, nil
	}
	summary.Category = category

	chosen, err := in.chooseSkills(ctx, registry, category, req)
	if err != nil {
		return nil, err
	}
	if len(chosen) == 0 {
		summary.Cancelled = true
		return summary, nil
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create destination: %w", skills.ErrIOFailure, err)
	}
	ledger := openLedger(ctx, dest, true)
	if ledger != nil {
		defer ledger.Close()
	}

	for _, rec := range chosen {
		var previous *store.InstallState
		if ledger != nil {
			var gerr error
			if previous, gerr = ledger.GetInstall(rec.Name); gerr != nil {
				log.WithError(gerr).WithField("skill", rec.Key()).Debug("could not read install record")
			}
		}

		state, err := in.source.Materialize(ctx, rec, dest)
		if err != nil {
			log.WithError(err).WithField("skill", rec.Key()).Warn("install failed, skipping")
			summary.Failed = append(summary.Failed, Failure{Record: rec, Err: err})
			continue
		}
		if previous != nil {
			summary.Replaced++
			entry := log.WithField("skill", rec.Key())
			if skills.IsNewer(state.Version, previous.Version) {
				entry.WithField("from", previous.Version).WithField("to", state.Version).Info("skill upgraded")
			} else {
				entry.Debug("skill reinstalled")
			}
		}
		if ledger != nil {
			if err := ledger.SaveInstall(state); err != nil {
				log.WithError(err).Warn("could not record install")
			}
		}
		summary.Installed = append(summary.Installed, state)
	}
	return summary, nil
}

// load asks the source for records. For a remote source a successful fetch
// refreshes the ledger cache and a failed fetch falls back to it.
func (in *Installer) load(ctx context.Context, dest string) ([]skills.Record, error) {
	records, err := in.source.Load(ctx)
	if in.source.Mode() != ModeRemote {
		return records, err
	}

	ledger := openLedger(ctx, dest, false)
	if ledger != nil {
		defer ledger.Close()
	}

	if err == nil {
		if ledger != nil {
			if cerr := ledger.ReplaceRegistryCache(toCache(records)); cerr != nil {
				logger.G(ctx).WithError(cerr).Debug("could not refresh registry cache")
			}
		}
		return records, nil
	}

	if ledger == nil || !errors.Is(err, skills.ErrRegistryUnavailable) {
		return nil, err
	}
	cached, cerr := ledger.CachedRegistry()
	if cerr != nil || len(cached) == 0 {
		return nil, err
	}
	logger.G(ctx).WithError(err).Warn("registry unreachable, using cached copy")
	return fromCache(cached), nil
}

func (in *Installer) chooseCategory(ctx context.Context, registry *skills.Registry, want string) (string, error) {
	categories := registry.Categories()
	if want != "" {
		for _, c := range categories {
			if c == want {
				return c, nil
			}
		}
		return "", fmt.Errorf("category %q: %w", want, ErrNotFound)
	}

	items := make([]tui.Item, len(categories))
	for i, c := range categories {
		n := len(registry.InCategory(c))
		desc := fmt.Sprintf("%d skills", n)
		if n == 1 {
			desc = "1 skill"
		}
		items[i] = tui.Item{Label: c, Description: desc}
	}

	picked, err := in.selectItems(ctx, "Select a category", items, tui.ModeSingle)
	if err != nil || len(picked) == 0 {
		return "", err
	}
	return categories[picked[0]], nil
}

func (in *Installer) chooseSkills(ctx context.Context, registry *skills.Registry, category string, req Request) ([]skills.Record, error) {
	available := registry.InCategory(category)
	if req.All {
		return available, nil
	}

	if len(req.Skills) > 0 {
		var chosen []skills.Record
		for _, name := range req.Skills {
			rec, ok := registry.Lookup(category, name)
			if !ok {
				return nil, fmt.Errorf("skill %s/%s: %w", category, name, ErrNotFound)
			}
			chosen = append(chosen, rec)
		}
		return chosen, nil
	}

	items := make([]tui.Item, len(available))
	for i, rec := range available {
		items[i] = tui.Item{Label: rec.Name, Description: rec.Description}
	}
	picked, err := in.selectItems(ctx, fmt.Sprintf("Select %s skills", category), items, tui.ModeMulti)
	if err != nil {
		return nil, err
	}
	chosen := make([]skills.Record, 0, len(picked))
	for _, i := range picked {
		chosen = append(chosen, available[i])
	}
	return chosen, nil
}

func (in *Installer) selectItems(ctx context.Context, title string, items []tui.Item, mode tui.Mode) ([]int, error) {
	if in.selector == nil {
		return nil, tui.ErrNotTerminal
	}
	return in.selector.Select(ctx, title, items, mode)
}

// openLedger opens <dest>/.skillbox.db. Without create, a missing ledger
// yields nil. Failures are logged and yield nil; the ledger never blocks an
// install.
func openLedger(ctx context.Context, dest string, create bool) *store.Store {
	path := filepath.Join(dest, store.FileName)
	if !create {
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	s, err := store.NewStore(path)
	if err != nil {
		logger.G(ctx).WithError(err).WithField("path", path).Warn("could not open install ledger")
		return nil
	}
	return s
}

func toCache(records []skills.Record) []store.RegistryEntry {
	entries := make([]store.RegistryEntry, len(records))
	for i, r := range records {
		entries[i] = store.RegistryEntry{Category: r.Category, Name: r.Name, Description: r.Description}
	}
	return entries
}

func fromCache(entries []store.RegistryEntry) []skills.Record {
	records := make([]skills.Record, len(entries))
	for i, e := range entries {
		records[i] = skills.Record{Category: e.Category, Name: e.Name, Description: e.Description}
	}
	return records
}
