package router

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeMetadata struct {
	value string
	ok    bool
	err   error
}

func (f fakeMetadata) DateTime(path string) (string, bool, error) {
	return f.value, f.ok, f.err
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestResolveDate(t *testing.T) {
	mtime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		meta       MetadataReader
		wantTime   time.Time
		wantSource Source
	}{
		{
			name:       "metadata wins over mtime",
			meta:       fakeMetadata{value: "2023:11:05 08:30:00", ok: true},
			wantTime:   time.Date(2023, 11, 5, 8, 30, 0, 0, time.UTC),
			wantSource: SourceExif,
		},
		{
			name:       "absent metadata falls back to mtime",
			meta:       fakeMetadata{},
			wantSource: SourceFileModified,
		},
		{
			name:       "metadata error treated as absence",
			meta:       fakeMetadata{value: "2023:11:05 08:30:00", ok: true, err: errors.New("boom")},
			wantSource: SourceFileModified,
		},
		{
			name:       "unparseable metadata falls back to mtime",
			meta:       fakeMetadata{value: "last tuesday", ok: true},
			wantSource: SourceFileModified,
		},
		{
			name:       "nil metadata reader falls back to mtime",
			wantSource: SourceFileModified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "photo.jpg")
			touch(t, path)
			if err := os.Chtimes(path, mtime, mtime); err != nil {
				t.Fatalf("chtimes: %v", err)
			}

			r := &Router{Metadata: tt.meta, Location: time.UTC}
			got, err := r.ResolveDate(path)
			if err != nil {
				t.Fatalf("ResolveDate: %v", err)
			}
			if got.Source != tt.wantSource {
				t.Errorf("source = %q, want %q", got.Source, tt.wantSource)
			}
			want := tt.wantTime
			if want.IsZero() {
				want = mtime
			}
			if !got.Timestamp.Equal(want) {
				t.Errorf("timestamp = %v, want %v", got.Timestamp, want)
			}
		})
	}
}

func TestResolveDate_MissingFile(t *testing.T) {
	r := New(nil)
	if _, err := r.ResolveDate(filepath.Join(t.TempDir(), "nope.jpg")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestComputeDestinationDir(t *testing.T) {
	root := t.TempDir()
	r := New(nil)

	ts := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)
	dir, err := r.ComputeDestinationDir(root, ts)
	if err != nil {
		t.Fatalf("ComputeDestinationDir: %v", err)
	}
	want := filepath.Join(root, "2024", "03", "07")
	if dir != want {
		t.Errorf("dir = %q, want %q", dir, want)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s, err=%v", dir, err)
	}

	// Second call must be a no-op, not an error.
	again, err := r.ComputeDestinationDir(root, ts)
	if err != nil {
		t.Fatalf("second ComputeDestinationDir: %v", err)
	}
	if again != dir {
		t.Errorf("second call = %q, want %q", again, dir)
	}
}

func TestComputeDestinationDir_PathOccupiedByFile(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "2024"))

	r := New(nil)
	if _, err := r.ComputeDestinationDir(root, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Fatal("expected error when a path element is a file")
	}
}

func TestResolveCollision(t *testing.T) {
	tests := []struct {
		name        string
		existing    []string
		fileName    string
		want        string
		wantRenamed bool
	}{
		{
			name:     "no collision",
			fileName: "photo.jpg",
			want:     "photo.jpg",
		},
		{
			name:        "first collision gets _1",
			existing:    []string{"photo.jpg"},
			fileName:    "photo.jpg",
			want:        "photo_1.jpg",
			wantRenamed: true,
		},
		{
			name:        "second collision gets _2",
			existing:    []string{"photo.jpg", "photo_1.jpg"},
			fileName:    "photo.jpg",
			want:        "photo_2.jpg",
			wantRenamed: true,
		},
		{
			name:        "gap in suffix chain is used",
			existing:    []string{"photo.jpg", "photo_1.jpg", "photo_3.jpg"},
			fileName:    "photo.jpg",
			want:        "photo_2.jpg",
			wantRenamed: true,
		},
		{
			name:        "no extension",
			existing:    []string{"README"},
			fileName:    "README",
			want:        "README_1",
			wantRenamed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range tt.existing {
				touch(t, filepath.Join(dir, name))
			}

			r := New(nil)
			got, err := r.ResolveCollision(dir, tt.fileName)
			if err != nil {
				t.Fatalf("ResolveCollision: %v", err)
			}
			if got.DestinationPath != filepath.Join(dir, tt.want) {
				t.Errorf("path = %q, want %q", got.DestinationPath, filepath.Join(dir, tt.want))
			}
			if got.Renamed != tt.wantRenamed {
				t.Errorf("renamed = %v, want %v", got.Renamed, tt.wantRenamed)
			}
		})
	}
}

func TestResolveCollision_Deterministic(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "photo.jpg"))

	r := New(nil)
	first, err := r.ResolveCollision(dir, "photo.jpg")
	if err != nil {
		t.Fatalf("first ResolveCollision: %v", err)
	}
	second, err := r.ResolveCollision(dir, "photo.jpg")
	if err != nil {
		t.Fatalf("second ResolveCollision: %v", err)
	}
	if first.DestinationPath != second.DestinationPath {
		t.Errorf("unchanged snapshot gave %q then %q", first.DestinationPath, second.DestinationPath)
	}
}

func TestResolveCollision_ClaimedNamesAreOccupied(t *testing.T) {
	dir := t.TempDir()

	r := &Router{Claimed: make(map[string]bool)}
	first, err := r.ResolveCollision(dir, "photo.jpg")
	if err != nil {
		t.Fatalf("first ResolveCollision: %v", err)
	}
	if want := filepath.Join(dir, "photo.jpg"); first.DestinationPath != want {
		t.Errorf("first path = %q, want %q", first.DestinationPath, want)
	}

	// The directory is still empty, so only the claim set can force the
	// second resolution onto a suffix.
	second, err := r.ResolveCollision(dir, "photo.jpg")
	if err != nil {
		t.Fatalf("second ResolveCollision: %v", err)
	}
	if want := filepath.Join(dir, "photo_1.jpg"); second.DestinationPath != want {
		t.Errorf("second path = %q, want %q", second.DestinationPath, want)
	}
	if !second.Renamed {
		t.Error("second decision should be renamed")
	}

	third, err := r.ResolveCollision(dir, "photo.jpg")
	if err != nil {
		t.Fatalf("third ResolveCollision: %v", err)
	}
	if want := filepath.Join(dir, "photo_2.jpg"); third.DestinationPath != want {
		t.Errorf("third path = %q, want %q", third.DestinationPath, want)
	}
}

func TestResolveCollision_BoundExceeded(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "photo.jpg"))
	for i := 1; i <= 5; i++ {
		touch(t, filepath.Join(dir, fmt.Sprintf("photo_%d.jpg", i)))
	}

	r := &Router{MaxProbes: 5}
	_, err := r.ResolveCollision(dir, "photo.jpg")
	if !errors.Is(err, ErrCollisionBound) {
		t.Fatalf("err = %v, want ErrCollisionBound", err)
	}
}

func TestRoute(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(t.TempDir(), "IMG_01.JPG")
	touch(t, src)

	r := &Router{
		Metadata: fakeMetadata{value: "2023:11:05 08:30:00", ok: true},
		Location: time.UTC,
	}

	decision, err := r.Route(src, root)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	want := filepath.Join(root, "2023", "11", "05", "IMG_01.JPG")
	if decision.DestinationPath != want {
		t.Errorf("path = %q, want %q", decision.DestinationPath, want)
	}
	if decision.Renamed {
		t.Error("renamed = true, want false for empty destination")
	}
	if decision.Date.Source != SourceExif {
		t.Errorf("source = %q, want %q", decision.Date.Source, SourceExif)
	}

	// Route must not copy or move anything itself.
	if _, err := os.Stat(want); !os.IsNotExist(err) {
		t.Errorf("destination file exists, router should only create directories")
	}

	// A second file with the same name and date collides once the first
	// destination is occupied.
	touch(t, want)
	second, err := r.Route(src, root)
	if err != nil {
		t.Fatalf("second Route: %v", err)
	}
	if got := filepath.Join(root, "2023", "11", "05", "IMG_01_1.JPG"); second.DestinationPath != got {
		t.Errorf("second path = %q, want %q", second.DestinationPath, got)
	}
	if !second.Renamed {
		t.Error("second decision should be renamed")
	}
}
