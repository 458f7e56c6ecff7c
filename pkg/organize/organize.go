// Package organize sorts the files of a single directory into category
// folders (Images, Documents, ...) chosen by file extension.
package organize

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pawel-mazurkiewicz/scripts/pkg/fileops"
	"github.com/pawel-mazurkiewicz/scripts/pkg/router"
)

// compoundArchiveSuffixes are matched before the plain extension so that
// archive.tar.gz lands in Archives rather than whatever ".gz" maps to.
var compoundArchiveSuffixes = []string{".tar.gz", ".tar.bz2", ".tar.xz"}

// Options configures an organizing run.
type Options struct {
	// Categories maps folder names to their extensions. Required.
	Categories map[string][]string

	// SkipNames lists lowercased file names never touched (OS junk).
	SkipNames []string

	// DryRun plans without creating folders or moving files.
	DryRun bool

	Logger *slog.Logger
}

// Move records one planned or performed categorization.
type Move struct {
	Source      string
	Destination string
	Category    string
	Renamed     bool
}

// Stats aggregates a run.
type Stats struct {
	Found         int
	Moved         int
	Uncategorized int
	Skipped       int
	Failed        int
}

// Run organizes the files directly inside dir. Subdirectories are left
// alone; hidden files and known junk names are skipped. Uncategorizable
// files are reported but not moved.
func Run(dir string, opts Options) (Stats, []Move, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	info, err := os.Stat(dir)
	if err != nil {
		return Stats{}, nil, fmt.Errorf("target %s: %w", dir, err)
	}
	if !info.IsDir() {
		return Stats{}, nil, fmt.Errorf("target %s: not a directory", dir)
	}

	byExt := invertCategories(opts.Categories)
	skip := make(map[string]bool, len(opts.SkipNames))
	for _, name := range opts.SkipNames {
		skip[strings.ToLower(name)] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Stats{}, nil, fmt.Errorf("read target %s: %w", dir, err)
	}
	// Stable processing order keeps collision suffixes deterministic.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	rt := router.New(nil)
	var stats Stats
	var moves []Move

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		stats.Found++

		name := entry.Name()
		lower := strings.ToLower(name)
		if skip[lower] || strings.HasPrefix(name, ".") {
			stats.Skipped++
			continue
		}

		category := categorize(lower, byExt)
		if category == "" {
			stats.Uncategorized++
			logger.Warn("unknown file type", slog.String("file", name))
			continue
		}

		categoryDir := filepath.Join(dir, category)
		if opts.DryRun {
			stats.Moved++
			moves = append(moves, Move{
				Source:      filepath.Join(dir, name),
				Destination: filepath.Join(categoryDir, name),
				Category:    category,
			})
			continue
		}

		if err := os.MkdirAll(categoryDir, 0o755); err != nil {
			stats.Failed++
			logger.Error("create category folder failed", slog.String("category", category), slog.Any("error", err))
			continue
		}

		decision, err := rt.ResolveCollision(categoryDir, name)
		if err != nil {
			stats.Failed++
			logger.Error("collision resolution failed", slog.String("file", name), slog.Any("error", err))
			continue
		}

		src := filepath.Join(dir, name)
		if err := fileops.Move(src, decision.DestinationPath); err != nil {
			stats.Failed++
			logger.Error("move failed", slog.String("file", name), slog.Any("error", err))
			continue
		}

		stats.Moved++
		moves = append(moves, Move{
			Source:      src,
			Destination: decision.DestinationPath,
			Category:    category,
			Renamed:     decision.Renamed,
		})
		logger.Debug("organized", slog.String("file", name), slog.String("category", category))
	}

	return stats, moves, nil
}

func categorize(lowerName string, byExt map[string]string) string {
	for _, suffix := range compoundArchiveSuffixes {
		if strings.HasSuffix(lowerName, suffix) {
			return "Archives"
		}
	}
	return byExt[filepath.Ext(lowerName)]
}

func invertCategories(categories map[string][]string) map[string]string {
	byExt := make(map[string]string)
	// Deterministic iteration: later categories must not flip earlier
	// extension claims between runs.
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, ext := range categories[name] {
			e := strings.ToLower(strings.TrimSpace(ext))
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			if _, claimed := byExt[e]; !claimed {
				byExt[e] = name
			}
		}
	}
	return byExt
}
