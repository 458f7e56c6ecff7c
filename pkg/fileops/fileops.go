// Package fileops implements the filesystem operations shared by the tools:
// safe copies that never overwrite and moves that survive crossing devices.
package fileops

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrDestinationExists is returned when a copy or move target is occupied.
var ErrDestinationExists = errors.New("destination file already exists")

// Copy copies src to dst without overwriting. The destination is created
// with O_EXCL and fsynced before close; a partial file is removed on error.
func Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode())
	if err != nil {
		if os.IsExist(err) {
			return ErrDestinationExists
		}
		return fmt.Errorf("create destination: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("copy content: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	return nil
}

// Move renames src to dst, falling back to copy+remove when the rename
// fails (typically a cross-device move). The destination must not exist.
func Move(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return ErrDestinationExists
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat destination: %w", err)
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := Copy(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}
