// Package router assigns dated, collision-free destination paths to files.
//
// A file's date is resolved with a strict two-tier fallback (embedded
// metadata, then filesystem mtime), mapped to a root/YYYY/MM/DD directory,
// and disambiguated against already-present names with numeric suffixes.
// The router never moves or copies file contents; that is the caller's job.
package router

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Source describes where a resolved date came from.
type Source string

const (
	SourceExif         Source = "exif"
	SourceFileModified Source = "file_modified"
)

// exifTimeLayout is the EXIF DateTime format. Tags usually carry no
// timezone; they are interpreted in the router's location.
const exifTimeLayout = "2006:01:02 15:04:05"

// DefaultMaxProbes bounds the collision-suffix search. Exhausting it is a
// per-file fatal error, not a reason to abort sibling files.
const DefaultMaxProbes = 10000

// ErrCollisionBound is returned when no free name was found within the
// configured number of suffix probes.
var ErrCollisionBound = errors.New("collision suffix bound exceeded")

// ResolvedDate is a file's best-known date and where it came from.
type ResolvedDate struct {
	Timestamp time.Time
	Source    Source
}

// RoutingDecision is the final destination assignment for one file.
type RoutingDecision struct {
	// DestinationPath is the collision-free target path.
	DestinationPath string

	// Renamed reports whether a collision suffix was applied.
	Renamed bool

	// Date is the resolved date the destination encodes.
	Date ResolvedDate
}

// MetadataReader extracts an embedded date-time string from a file.
//
// Implementations should return the raw tag value in "YYYY:MM:DD HH:MM:SS"
// form and ok=true when found, preferring a capture-time field over a
// generic date field. Any error is treated by the router as absence.
type MetadataReader interface {
	DateTime(path string) (value string, ok bool, err error)
}

// Router computes routing decisions against the live filesystem.
type Router struct {
	// Metadata supplies embedded dates. If nil, resolution always falls
	// back to the file's modification time.
	Metadata MetadataReader

	// Location interprets metadata timestamps, which carry no timezone.
	// If nil, time.Local is used.
	Location *time.Location

	// MaxProbes bounds ResolveCollision. Zero means DefaultMaxProbes.
	MaxProbes int

	// Claimed, when non-nil, holds destinations already promised to
	// earlier files of the same run. ResolveCollision treats them as
	// occupied and records its own results there, so planning-only
	// callers see collisions the filesystem cannot show yet.
	Claimed map[string]bool

	// dirLocks serializes collision resolution per destination directory
	// so concurrent routing cannot assign the same name twice.
	mu       sync.Mutex
	dirLocks map[string]*sync.Mutex
}

// New returns a Router using the given metadata reader.
func New(meta MetadataReader) *Router {
	return &Router{Metadata: meta}
}

// ResolveDate returns the best-known date for path.
//
// Metadata wins whenever it is present and parseable; absence, read errors
// and parse failures all fall back to the filesystem mtime. Only a failed
// stat is an error.
func (r *Router) ResolveDate(path string) (ResolvedDate, error) {
	if r.Metadata != nil {
		if value, ok, err := r.Metadata.DateTime(path); err == nil && ok {
			if ts, parseErr := time.ParseInLocation(exifTimeLayout, value, r.location()); parseErr == nil {
				return ResolvedDate{Timestamp: ts, Source: SourceExif}, nil
			}
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return ResolvedDate{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return ResolvedDate{Timestamp: info.ModTime(), Source: SourceFileModified}, nil
}

// ComputeDestinationDir builds and creates root/YYYY/MM/DD for t.
//
// Creation is idempotent; an existing directory is not an error. A path
// element occupied by a non-directory, or a permission failure, is.
func (r *Router) ComputeDestinationDir(root string, t time.Time) (string, error) {
	dir := filepath.Join(root,
		fmt.Sprintf("%04d", t.Year()),
		fmt.Sprintf("%02d", t.Month()),
		fmt.Sprintf("%02d", t.Day()),
	)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create destination dir %s: %w", dir, err)
	}
	return dir, nil
}

// ResolveCollision returns a destination inside dir that no existing file
// occupies. The unsuffixed name is preferred; otherwise stem_1.ext,
// stem_2.ext, ... are probed in order, so the result is deterministic for a
// given directory snapshot. Probing is serialized per directory.
func (r *Router) ResolveCollision(dir, fileName string) (RoutingDecision, error) {
	lock := r.dirLock(dir)
	lock.Lock()
	defer lock.Unlock()

	candidate := filepath.Join(dir, fileName)
	occupied, err := r.occupied(candidate)
	if err != nil {
		return RoutingDecision{}, err
	}
	if !occupied {
		r.claim(candidate)
		return RoutingDecision{DestinationPath: candidate}, nil
	}

	ext := filepath.Ext(fileName)
	stem := strings.TrimSuffix(fileName, ext)

	for i := 1; i <= r.maxProbes(); i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		occupied, err = r.occupied(candidate)
		if err != nil {
			return RoutingDecision{}, err
		}
		if !occupied {
			r.claim(candidate)
			return RoutingDecision{DestinationPath: candidate, Renamed: true}, nil
		}
	}

	return RoutingDecision{}, fmt.Errorf("%w: %s in %s", ErrCollisionBound, fileName, dir)
}

// Route resolves path's date, ensures the dated directory under root exists
// and returns a collision-free destination for it. The move or copy itself
// is left to the caller.
func (r *Router) Route(path, root string) (RoutingDecision, error) {
	date, err := r.ResolveDate(path)
	if err != nil {
		return RoutingDecision{}, err
	}

	dir, err := r.ComputeDestinationDir(root, date.Timestamp)
	if err != nil {
		return RoutingDecision{}, err
	}

	decision, err := r.ResolveCollision(dir, filepath.Base(path))
	if err != nil {
		return RoutingDecision{}, err
	}
	decision.Date = date
	return decision, nil
}

func (r *Router) location() *time.Location {
	if r.Location != nil {
		return r.Location
	}
	return time.Local
}

func (r *Router) maxProbes() int {
	if r.MaxProbes > 0 {
		return r.MaxProbes
	}
	return DefaultMaxProbes
}

func (r *Router) dirLock(dir string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dirLocks == nil {
		r.dirLocks = make(map[string]*sync.Mutex)
	}
	lock, ok := r.dirLocks[dir]
	if !ok {
		lock = &sync.Mutex{}
		r.dirLocks[dir] = lock
	}
	return lock
}

func (r *Router) occupied(path string) (bool, error) {
	if r.Claimed[path] {
		return true, nil
	}
	return exists(path)
}

func (r *Router) claim(path string) {
	if r.Claimed != nil {
		r.Claimed[path] = true
	}
}

func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}
