package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func TestDefaultOutputPath(t *testing.T) {
	cases := map[string]string{
		"scan.pdf":     "scan.interleaved.pdf",
		"dir/scan.PDF": "dir/scan.interleaved.pdf",
		"scan":         "scan.interleaved.pdf",
	}
	for in, want := range cases {
		if got := defaultOutputPath(in); got != want {
			t.Errorf("defaultOutputPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPrintPlan(t *testing.T) {
	var buf bytes.Buffer
	printPlan(&buf, Plan{3, Blank, 1})
	want := "1: page 3\n2: blank\n3: page 1\n"
	if buf.String() != want {
		t.Fatalf("plan output mismatch.\n got=%q\nwant=%q", buf.String(), want)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	if code := run(nil, io.Discard); code != 2 {
		t.Fatalf("missing input: exit code %d, want 2", code)
	}
	args := []string{"-r", "--no-reverse-second", "scan.pdf"}
	if code := run(args, io.Discard); code != 2 {
		t.Fatalf("conflicting reverse flags: exit code %d, want 2", code)
	}
}

func TestRun_MissingFile(t *testing.T) {
	if code := run([]string{filepath.Join(t.TempDir(), "nope.pdf")}, io.Discard); code != 2 {
		t.Fatalf("missing file: exit code %d, want 2", code)
	}
}

func TestRun_UnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	if code := run([]string{path}, io.Discard); code != 1 {
		t.Fatalf("unreadable file: exit code %d, want 1", code)
	}
}

// writeScan writes a test PDF with n pages of distinct widths to dir.
func writeScan(t *testing.T, dir string, n int) string {
	t.Helper()
	dims := make([]types.Dim, n)
	for i := range dims {
		dims[i] = types.Dim{Width: float64(300 + 10*i), Height: 400}
	}
	path := filepath.Join(dir, "scan.pdf")
	if err := os.WriteFile(path, testPDFBytes(t, dims), 0o644); err != nil {
		t.Fatalf("write scan: %v", err)
	}
	return path
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := writeScan(t, dir, 4)
	out := filepath.Join(dir, "out.pdf")

	var buf bytes.Buffer
	code := run([]string{"--dry-run", "--pad-blank", "-o", out, in}, &buf)
	if code != 0 {
		t.Fatalf("dry run: exit code %d, want 0", code)
	}
	// Default split 3: front=[1,2], back=[4,3].
	for _, line := range []string{"1: page 1", "2: page 4", "3: page 2", "4: page 3"} {
		if !strings.Contains(buf.String(), line) {
			t.Fatalf("dry run output missing %q:\n%s", line, buf.String())
		}
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("dry run must not create the output file (stat err=%v)", err)
	}
	if _, err := os.Stat(defaultOutputPath(in)); !os.IsNotExist(err) {
		t.Fatalf("dry run must not create the default output file (stat err=%v)", err)
	}
}

func TestRun_WritesInterleavedOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeScan(t, dir, 6)
	out := filepath.Join(dir, "out.pdf")

	if code := run([]string{"-o", out, in}, io.Discard); code != 0 {
		t.Fatalf("run: exit code %d, want 0", code)
	}
	n, err := api.PageCountFile(out)
	if err != nil {
		t.Fatalf("page count of output: %v", err)
	}
	if n != 6 {
		t.Fatalf("output has %d pages, want 6", n)
	}
}

func TestRun_InvalidSplit(t *testing.T) {
	dir := t.TempDir()
	in := writeScan(t, dir, 4)
	if code := run([]string{"-s", "99", in}, io.Discard); code != 2 {
		t.Fatalf("out-of-range split: exit code %d, want 2", code)
	}
	if _, err := os.Stat(defaultOutputPath(in)); !os.IsNotExist(err) {
		t.Fatalf("failed run must not leave an output file (stat err=%v)", err)
	}
}
