package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// executeCommand runs a cobra command with the given args and captures combined output.
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	_, err = root.ExecuteC()
	return buf.String(), err
}

const sampleSessionJSON = `{
  "tester_name": "alice",
  "charter": "explore the checkout flow",
  "duration_minutes": 60,
  "started_at": "2026-02-20T18:00:00Z",
  "notes": [
    {
      "id": "n2",
      "timestamp": "2026-02-20T18:05:00Z",
      "type": "observation",
      "text": "cart total updates live"
    },
    {
      "id": "n1",
      "timestamp": "2026-02-20T18:02:00Z",
      "type": "bug",
      "text": "crashes on save"
    }
  ]
}`

// TestRenderNonExistentFile verifies that rendering a missing file returns
// "file not found: <path>".
func TestRenderNonExistentFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	missingPath := filepath.Join(tmp, "does-not-exist.json")

	renderOutput = ""
	out, err := executeCommand(rootCmd, "render", missingPath)
	if err == nil {
		t.Fatal("expected an error for non-existent file, got nil")
	}
	combined := out + err.Error()
	expected := "file not found: " + missingPath
	if !strings.Contains(combined, expected) {
		t.Errorf("expected error to contain %q, got: %q", expected, combined)
	}
}

// TestRenderInvalidJSON verifies that a malformed session file is rejected
// with a parse error.
func TestRenderInvalidJSON(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	badPath := filepath.Join(tmp, "bad.json")
	if err := os.WriteFile(badPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	renderOutput = ""
	out, err := executeCommand(rootCmd, "render", badPath)
	if err == nil {
		t.Fatal("expected an error for malformed JSON, got nil")
	}
	combined := out + err.Error()
	if !strings.Contains(combined, "parse session file") {
		t.Errorf("expected error to contain %q, got: %q", "parse session file", combined)
	}
}

// TestRenderPrintsMarkdown verifies that a valid session file renders to
// stdout with the header, summary, and notes in chronological order.
func TestRenderPrintsMarkdown(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	sessionPath := filepath.Join(tmp, "session.json")
	if err := os.WriteFile(sessionPath, []byte(sampleSessionJSON), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	renderOutput = ""
	out, err := executeCommand(rootCmd, "render", sessionPath)
	if err != nil {
		t.Fatalf("render: %v\noutput:\n%s", err, out)
	}

	for _, want := range []string{
		"- **Tester:** alice",
		"- **Duration:** 60 min",
		"1 Bug",
		"crashes on save",
		"cart total updates live",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\noutput:\n%s", want, out)
		}
	}

	// The bug note (18:02) must precede the observation (18:05).
	bug := strings.Index(out, "crashes on save")
	obs := strings.Index(out, "cart total updates live")
	if bug >= obs {
		t.Errorf("notes out of order: bug@%d observation@%d", bug, obs)
	}
}

// TestRenderExportsWithOutputFlag verifies that --output produces the full
// export folder and reports the markdown path.
func TestRenderExportsWithOutputFlag(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	sessionPath := filepath.Join(tmp, "session.json")
	if err := os.WriteFile(sessionPath, []byte(sampleSessionJSON), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	dest := filepath.Join(tmp, "exports")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	out, err := executeCommand(rootCmd, "render", sessionPath, "-o", dest)
	renderOutput = ""
	if err != nil {
		t.Fatalf("render -o: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "Report: ") {
		t.Fatalf("expected the markdown path to be reported, got: %q", out)
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "RapidReporter-") {
		t.Fatalf("expected a single RapidReporter-* folder, got %v", entries)
	}
	folder := filepath.Join(dest, entries[0].Name())
	if _, err := os.Stat(filepath.Join(folder, entries[0].Name()+".md")); err != nil {
		t.Errorf("markdown file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(folder, "assets", "icons", "bug.png")); err != nil {
		t.Errorf("bug icon missing from export: %v", err)
	}
}
