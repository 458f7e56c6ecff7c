// Package photosort organizes photos into a year/month/day tree under a
// destination root, dating each file from its EXIF metadata when present
// and its modification time otherwise.
package photosort

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/pawel-mazurkiewicz/scripts/pkg/exifdate"
	"github.com/pawel-mazurkiewicz/scripts/pkg/fileops"
	"github.com/pawel-mazurkiewicz/scripts/pkg/router"
)

// lockFileName guards a destination root against concurrent runs.
const lockFileName = ".photosort.lock"

// ErrDestinationLocked is returned when another run holds the destination.
var ErrDestinationLocked = errors.New("destination is locked by another run")

// Options configures a sorting run.
type Options struct {
	// Extensions lists the photo extensions to process. Empty means the
	// built-in set (.jpg, .jpeg, .raf).
	Extensions []string

	// Copy leaves sources in place instead of moving them.
	Copy bool

	// DryRun routes files (creating dated directories) without moving or
	// copying anything.
	DryRun bool

	// Metadata overrides the EXIF reader, used in tests.
	Metadata router.MetadataReader

	// Location interprets EXIF timestamps. Nil means time.Local.
	Location *time.Location

	Logger *slog.Logger
}

// Move records one routed file.
type Move struct {
	Source      string
	Destination string
	Date        router.ResolvedDate
	Renamed     bool
}

// Stats aggregates a run. Counters are plain return values; callers own
// any further aggregation.
type Stats struct {
	Found        int // files seen under the source tree
	Routed       int // files routed (and moved/copied unless dry-run)
	ExifDated    int // routed files dated from metadata
	ModTimeDated int // routed files dated from mtime
	Unsupported  int // files skipped for their extension
	Failed       int // files that errored; siblings keep going
}

// Run routes every supported photo under source into dest.
//
// Per-file failures (including an exhausted collision bound) are counted
// and logged but do not stop the run. Environment failures - an unreadable
// source tree or a destination locked by another run - abort it.
func Run(source, dest string, opts Options) (Stats, []Move, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if info, err := os.Stat(source); err != nil {
		return Stats{}, nil, fmt.Errorf("source %s: %w", source, err)
	} else if !info.IsDir() {
		return Stats{}, nil, fmt.Errorf("source %s: not a directory", source)
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return Stats{}, nil, fmt.Errorf("create destination root: %w", err)
	}

	// One run per destination tree. The router serializes collisions
	// within a process; the flock extends that across processes.
	lock := flock.New(filepath.Join(dest, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return Stats{}, nil, fmt.Errorf("lock destination: %w", err)
	}
	if !locked {
		return Stats{}, nil, fmt.Errorf("%w: %s", ErrDestinationLocked, dest)
	}
	defer lock.Unlock()

	meta := opts.Metadata
	if meta == nil {
		meta = exifdate.Reader{}
	}
	rt := &router.Router{Metadata: meta, Location: opts.Location}
	if opts.DryRun {
		// Nothing lands on disk in a dry run, so planned names must be
		// reserved in memory or same-named files would share a destination.
		rt.Claimed = make(map[string]bool)
	}

	supported := normalizeExts(opts.Extensions)
	if len(supported) == 0 {
		supported = normalizeExts([]string{".jpg", ".jpeg", ".raf"})
	}

	var stats Stats
	var moves []Move

	walkErr := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		stats.Found++

		if !supported[strings.ToLower(filepath.Ext(path))] {
			stats.Unsupported++
			return nil
		}

		decision, routeErr := rt.Route(path, dest)
		if routeErr != nil {
			stats.Failed++
			logger.Error("routing failed", slog.String("file", path), slog.Any("error", routeErr))
			return nil
		}

		if !opts.DryRun {
			var opErr error
			if opts.Copy {
				opErr = fileops.Copy(path, decision.DestinationPath)
			} else {
				opErr = fileops.Move(path, decision.DestinationPath)
			}
			if opErr != nil {
				stats.Failed++
				logger.Error("transfer failed", slog.String("file", path), slog.Any("error", opErr))
				return nil
			}
		}

		stats.Routed++
		switch decision.Date.Source {
		case router.SourceExif:
			stats.ExifDated++
		case router.SourceFileModified:
			stats.ModTimeDated++
		}

		moves = append(moves, Move{
			Source:      path,
			Destination: decision.DestinationPath,
			Date:        decision.Date,
			Renamed:     decision.Renamed,
		})
		logger.Debug("routed",
			slog.String("from", path),
			slog.String("to", decision.DestinationPath),
			slog.String("date_source", string(decision.Date.Source)),
		)
		return nil
	})
	if walkErr != nil {
		return stats, moves, fmt.Errorf("walk source: %w", walkErr)
	}

	return stats, moves, nil
}

func normalizeExts(exts []string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, ext := range exts {
		e := strings.TrimSpace(strings.ToLower(ext))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m[e] = true
	}
	return m
}
