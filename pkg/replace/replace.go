// Package replace rewrites a string everywhere under a path: inside text
// file contents, in file names, and in directory names.
package replace

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Options configures a replacement run.
type Options struct {
	// DryRun counts and logs the changes without performing them.
	DryRun bool

	Logger *slog.Logger
}

// Stats aggregates a run.
type Stats struct {
	ContentsModified int
	FilesRenamed     int
	DirsRenamed      int
	Failed           int
}

// textMIMEs are non-text/* types still safe to rewrite as text.
var textMIMEs = map[string]bool{
	"application/json":       true,
	"application/xml":        true,
	"application/javascript": true,
	"application/x-sh":       true,
}

// Run replaces search with repl under root.
//
// Contents are rewritten first, then files and directories are renamed
// deepest-first so pending paths stay valid; root itself is renamed last
// and the final root path is returned. Per-path failures are counted and
// the run continues.
func Run(root, search, repl string, opts Options) (Stats, string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if search == "" {
		return Stats{}, root, fmt.Errorf("search string must not be empty")
	}

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return Stats{}, root, fmt.Errorf("root %s: %w", root, err)
	}

	var stats Stats

	if !info.IsDir() {
		processFile(root, search, repl, opts, &stats, logger)
		final := renamePath(root, search, repl, opts, &stats, logger, false)
		return stats, final, nil
	}

	// Collect everything up front; renaming during traversal would
	// invalidate the walker's paths.
	var files, dirs []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return stats, root, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	for _, path := range files {
		processFile(path, search, repl, opts, &stats, logger)
	}
	for _, path := range files {
		renamePath(path, search, repl, opts, &stats, logger, false)
	}
	// Deepest directories first.
	for i := len(dirs) - 1; i >= 0; i-- {
		renamePath(dirs[i], search, repl, opts, &stats, logger, true)
	}

	final := renamePath(root, search, repl, opts, &stats, logger, true)
	return stats, final, nil
}

func processFile(path, search, repl string, opts Options, stats *Stats, logger *slog.Logger) {
	isText, err := isTextFile(path)
	if err != nil {
		stats.Failed++
		logger.Error("detect file type failed", slog.String("file", path), slog.Any("error", err))
		return
	}
	if !isText {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		stats.Failed++
		logger.Error("read failed", slog.String("file", path), slog.Any("error", err))
		return
	}
	content := string(data)
	if !strings.Contains(content, search) {
		return
	}

	if opts.DryRun {
		stats.ContentsModified++
		logger.Debug("would modify content", slog.String("file", path))
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		stats.Failed++
		logger.Error("stat failed", slog.String("file", path), slog.Any("error", err))
		return
	}
	if err := os.WriteFile(path, []byte(strings.ReplaceAll(content, search, repl)), info.Mode()); err != nil {
		stats.Failed++
		logger.Error("write failed", slog.String("file", path), slog.Any("error", err))
		return
	}
	stats.ContentsModified++
	logger.Debug("modified content", slog.String("file", path))
}

// renamePath renames path if its base name contains search, and returns the
// path the entry now lives at.
func renamePath(path, search, repl string, opts Options, stats *Stats, logger *slog.Logger, isDir bool) string {
	base := filepath.Base(path)
	if !strings.Contains(base, search) {
		return path
	}
	newPath := filepath.Join(filepath.Dir(path), strings.ReplaceAll(base, search, repl))
	if newPath == path {
		return path
	}

	if opts.DryRun {
		if isDir {
			stats.DirsRenamed++
		} else {
			stats.FilesRenamed++
		}
		logger.Debug("would rename", slog.String("from", path), slog.String("to", newPath))
		return path
	}

	if _, err := os.Lstat(newPath); err == nil {
		stats.Failed++
		logger.Error("rename target occupied", slog.String("from", path), slog.String("to", newPath))
		return path
	}

	if err := os.Rename(path, newPath); err != nil {
		stats.Failed++
		logger.Error("rename failed", slog.String("from", path), slog.Any("error", err))
		return path
	}

	if isDir {
		stats.DirsRenamed++
	} else {
		stats.FilesRenamed++
	}
	logger.Debug("renamed", slog.String("from", path), slog.String("to", newPath))
	return newPath
}

func isTextFile(path string) (bool, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false, err
	}
	for t := mtype; t != nil; t = t.Parent() {
		if strings.HasPrefix(t.String(), "text/") || textMIMEs[baseMIME(t.String())] {
			return true, nil
		}
	}
	return false, nil
}

func baseMIME(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
