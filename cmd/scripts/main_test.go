package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, relPath, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestRootCommand_ShowsHelp(t *testing.T) {
	output, err := execute(t)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, sub := range []string{"photosort", "organize", "replace", "icns-export", "csv-to-ics", "svg-to-png"} {
		if !strings.Contains(output, sub) {
			t.Errorf("help output missing subcommand %q:\n%s", sub, output)
		}
	}
}

func TestPhotosortCommand_RequiresTwoArgs(t *testing.T) {
	if _, err := execute(t, "photosort", "only-source"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestPhotosortCommand_SortsByModTime(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	path := writeFile(t, src, "holiday.jpg", "pixels")
	mtime := time.Date(2020, 6, 7, 8, 9, 10, 0, time.UTC)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	output, err := execute(t, "photosort", src, dst)
	if err != nil {
		t.Fatalf("expected no error, got %v\n%s", err, output)
	}

	dest := filepath.Join(dst, "2020", "06", "07", "holiday.jpg")
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("file not sorted to %s: %v", dest, err)
	}
	if !strings.Contains(output, "Routed") {
		t.Errorf("summary missing from output:\n%s", output)
	}
}

func TestOrganizeCommand_DryRunLeavesFilesAlone(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "photo.jpg", "pixels")

	output, err := execute(t, "organize", dir, "--dry-run")
	if err != nil {
		t.Fatalf("expected no error, got %v\n%s", err, output)
	}
	if !strings.Contains(output, "Images") {
		t.Errorf("expected planned Images move in output:\n%s", output)
	}
	if _, err := os.Stat(filepath.Join(dir, "photo.jpg")); err != nil {
		t.Errorf("dry run moved the file: %v", err)
	}
}

func TestReplaceCommand_RenamesAndRewrites(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "proj")
	writeFile(t, root, "oldname.txt", "hello oldname")

	output, err := execute(t, "replace", root, "oldname", "newname")
	if err != nil {
		t.Fatalf("expected no error, got %v\n%s", err, output)
	}

	got, err := os.ReadFile(filepath.Join(root, "newname.txt"))
	if err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
	if string(got) != "hello newname" {
		t.Errorf("content = %q", got)
	}
}

func TestIcsCommand_WritesCalendar(t *testing.T) {
	dir := t.TempDir()
	csv := writeFile(t, dir, "events.csv", "Event,Date,StartTime,EndTime\nShift,2025-03-03,10:00,16:00\n")
	out := filepath.Join(dir, "events.ics")

	output, err := execute(t, "csv-to-ics", csv, "--out", out)
	if err != nil {
		t.Fatalf("expected no error, got %v\n%s", err, output)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read calendar: %v", err)
	}
	if !strings.Contains(string(data), "SUMMARY:Shift") {
		t.Errorf("calendar missing event:\n%s", data)
	}
}

func TestIcsCommand_BadCSVLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	csv := writeFile(t, dir, "events.csv", "Event,Date\nShift,2025-03-03\n")
	out := filepath.Join(dir, "events.ics")

	if _, err := execute(t, "csv-to-ics", csv, "--out", out); err == nil {
		t.Fatal("expected error for CSV without the required columns")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("failed conversion left output behind: %v", err)
	}
}

func TestSvgCommand_WritesPNG(t *testing.T) {
	dir := t.TempDir()
	svg := writeFile(t, dir, "shape.svg",
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect width="10" height="10" fill="#00f"/></svg>`)
	out := filepath.Join(dir, "shape.png")

	output, err := execute(t, "svg-to-png", svg, out, "--width", "24", "--height", "24")
	if err != nil {
		t.Fatalf("expected no error, got %v\n%s", err, output)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("png not written: %v", err)
	}
}

func TestIcnsCommand_RejectsBogusInput(t *testing.T) {
	dir := t.TempDir()
	bogus := writeFile(t, dir, "bogus.icns", "not an icon")

	if _, err := execute(t, "icns-export", bogus, "--out", dir); err == nil {
		t.Fatal("expected error for bogus icns input")
	}
}
