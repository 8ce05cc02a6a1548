package report_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/fakeyudi/rapidreporter/internal/report"
	"github.com/fakeyudi/rapidreporter/internal/session"
)

// buildSession assembles a session with deterministic timestamps. Notes
// are passed oldest-first and stored newest-first, the way AddNote would.
func buildSession(notes ...session.Note) *session.Session {
	base := time.Date(2026, 2, 20, 18, 0, 0, 0, time.UTC)
	s := &session.Session{
		TesterName:      "alice",
		Charter:         "explore the checkout flow",
		DurationMinutes: 60,
		StartedAt:       base,
	}
	for i, n := range notes {
		if n.ID == "" {
			n.ID = fmt.Sprintf("note-%d", i)
		}
		if n.Timestamp.IsZero() {
			n.Timestamp = base.Add(time.Duration(i+1) * time.Minute)
		}
		s.Notes = append([]session.Note{n}, s.Notes...)
	}
	return s
}

func note(t session.NoteType, text string) session.Note {
	return session.Note{Type: t, Text: text}
}

func TestRenderHeader(t *testing.T) {
	r := report.Render(buildSession())
	wantLines := []string{
		"- **Tester:** alice",
		"- **Charter:** explore the checkout flow",
		"- **Started:** 2026-02-20 18:00:00",
		"- **Duration:** 60 min",
	}
	for _, line := range wantLines {
		if !strings.Contains(r.Markdown, line+"\n") {
			t.Errorf("header missing %q\nmarkdown:\n%s", line, r.Markdown)
		}
	}
}

func TestRenderUnlimitedDuration(t *testing.T) {
	s := buildSession()
	s.DurationMinutes = 0
	r := report.Render(s)
	if !strings.Contains(r.Markdown, "- **Duration:** No limit\n") {
		t.Errorf("unlimited session must render \"No limit\"\nmarkdown:\n%s", r.Markdown)
	}
}

func TestSummaryCountsAndPluralisation(t *testing.T) {
	r := report.Render(buildSession(
		note(session.NoteBug, "b1"),
		note(session.NoteWarning, "w1"),
		note(session.NoteWarning, "w2"),
		note(session.NoteWarning, "w3"),
		note(session.NoteTest, "t1"),
		note(session.NoteSnippet, "x := 1"),
	))

	if !strings.Contains(r.Markdown, "## Summary") {
		t.Fatal("summary section missing")
	}
	if !strings.Contains(r.Markdown, `<img src="assets/icons/bug.png" width="50" valign="middle"> 1 Bug`) {
		t.Error("singular bug line missing or malformed")
	}
	if !strings.Contains(r.Markdown, `<img src="assets/icons/warning.png" width="50" valign="middle"> 3 Warnings`) {
		t.Error("plural warning line missing or malformed")
	}
	for _, absent := range []string{"idea.png", "observation.png", "question.png"} {
		if strings.Contains(r.Markdown, absent) {
			t.Errorf("summary must omit zero-count type (%s)", absent)
		}
	}
	// test and snippet notes don't participate in the summary.
	if strings.Contains(r.Markdown, "1 Test") || strings.Contains(r.Markdown, "1 Snippet") {
		t.Error("test/snippet must not be counted in the summary")
	}
}

func TestSummaryOmittedWhenEmpty(t *testing.T) {
	r := report.Render(buildSession(
		note(session.NoteTest, "just testing"),
		note(session.NoteSnippet, "x := 1"),
	))
	if strings.Contains(r.Markdown, "## Summary") {
		t.Errorf("summary must be omitted when all counts are zero\nmarkdown:\n%s", r.Markdown)
	}
}

func TestNotesRenderChronologically(t *testing.T) {
	r := report.Render(buildSession(
		note(session.NoteObservation, "first"),
		note(session.NoteObservation, "second"),
		note(session.NoteObservation, "third"),
	))

	first := strings.Index(r.Markdown, "first")
	second := strings.Index(r.Markdown, "second")
	third := strings.Index(r.Markdown, "third")
	if first < 0 || second < 0 || third < 0 {
		t.Fatalf("notes missing from output:\n%s", r.Markdown)
	}
	if !(first < second && second < third) {
		t.Errorf("notes out of order: first@%d second@%d third@%d", first, second, third)
	}
}

func TestScreenshotNoteRendersImageAndAsset(t *testing.T) {
	r := report.Render(buildSession(
		note(session.NoteScreenshot, "/tmp/captures/shot-17.png"),
	))

	if !strings.Contains(r.Markdown, "![Screenshot](/tmp/captures/shot-17.png)") {
		t.Errorf("screenshot link missing\nmarkdown:\n%s", r.Markdown)
	}

	if len(r.Assets) != 1 {
		t.Fatalf("assets: got %d, want 1", len(r.Assets))
	}
	a := r.Assets[0]
	if a.Kind != report.AssetScreenshot {
		t.Errorf("asset kind: got %q", a.Kind)
	}
	if a.SourcePath != "/tmp/captures/shot-17.png" {
		t.Errorf("asset source: got %q", a.SourcePath)
	}
	if a.ExportRelativePath != "assets/screenshots/shot-17.png" {
		t.Errorf("asset relative path: got %q", a.ExportRelativePath)
	}
}

func TestSnippetFencing(t *testing.T) {
	t.Run("plain snippet", func(t *testing.T) {
		r := report.Render(buildSession(note(session.NoteSnippet, "if ok {\n\treturn\n}")))
		if !strings.Contains(r.Markdown, "```\nif ok {\n\treturn\n}\n```\n") {
			t.Errorf("fenced snippet missing\nmarkdown:\n%s", r.Markdown)
		}
	})

	t.Run("snippet containing a fence", func(t *testing.T) {
		r := report.Render(buildSession(note(session.NoteSnippet, "```md\nnested\n```")))
		if !strings.Contains(r.Markdown, "````\n```md\nnested\n```\n````\n") {
			t.Errorf("renderer must widen the fence past the embedded one\nmarkdown:\n%s", r.Markdown)
		}
	})
}

func TestOnlyUsedIconsAreRegistered(t *testing.T) {
	r := report.Render(buildSession(
		note(session.NoteBug, "crashes"),
		note(session.NoteTest, "no icon for me"),
		note(session.NoteScreenshot, "/tmp/s.png"),
	))

	var icons []string
	for _, a := range r.Assets {
		if a.Kind == report.AssetIcon {
			icons = append(icons, a.SourcePath)
		}
	}
	if len(icons) != 1 || icons[0] != "bug.png" {
		t.Errorf("icon assets: got %v, want [bug.png]", icons)
	}
}

func TestIconNoteLinePreservesMultilineText(t *testing.T) {
	r := report.Render(buildSession(note(session.NoteBug, "line one\nline two")))
	if !strings.Contains(r.Markdown, `valign="middle"> line one`+"\nline two\n") {
		t.Errorf("multi-line note text must keep its line breaks\nmarkdown:\n%s", r.Markdown)
	}
}

// Rendering the same session value twice yields byte-identical output,
// and the summary obeys the pluralisation rules for any count vector.
func TestRenderProperties(t *testing.T) {
	summaryTypes := []session.NoteType{
		session.NoteBug,
		session.NoteIdea,
		session.NoteObservation,
		session.NoteQuestion,
		session.NoteWarning,
	}
	singular := map[session.NoteType]string{
		session.NoteBug:         "Bug",
		session.NoteIdea:        "Idea",
		session.NoteObservation: "Observation",
		session.NoteQuestion:    "Question",
		session.NoteWarning:     "Warning",
	}
	plural := map[session.NoteType]string{
		session.NoteBug:         "Bugs",
		session.NoteIdea:        "Ideas",
		session.NoteObservation: "Observations",
		session.NoteQuestion:    "Questions",
		session.NoteWarning:     "Warnings",
	}

	rapid.Check(t, func(t *rapid.T) {
		var notes []session.Note
		counts := map[session.NoteType]int{}
		for _, nt := range summaryTypes {
			counts[nt] = rapid.IntRange(0, 4).Draw(t, string(nt))
			for i := 0; i < counts[nt]; i++ {
				notes = append(notes, note(nt, fmt.Sprintf("%s %d", nt, i)))
			}
		}
		s := buildSession(notes...)

		first := report.Render(s)
		second := report.Render(s)
		if first.Markdown != second.Markdown {
			t.Fatal("render is not deterministic")
		}

		total := 0
		for _, c := range counts {
			total += c
		}
		if total == 0 {
			if strings.Contains(first.Markdown, "## Summary") {
				t.Fatal("all-zero counts must omit the summary")
			}
			return
		}

		for _, nt := range summaryTypes {
			c := counts[nt]
			switch {
			case c == 0:
				if strings.Contains(first.Markdown, fmt.Sprintf(`icons/%s.png" width="50" valign="middle"> 0 `, nt)) {
					t.Errorf("%s: zero count must be omitted", nt)
				}
			case c == 1:
				want := fmt.Sprintf("> 1 %s\n", singular[nt])
				if !strings.Contains(first.Markdown, want) {
					t.Errorf("%s: singular line %q missing", nt, want)
				}
			default:
				want := fmt.Sprintf("> %d %s\n", c, plural[nt])
				if !strings.Contains(first.Markdown, want) {
					t.Errorf("%s: plural line %q missing", nt, want)
				}
			}
		}
	})
}
