package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fakeyudi/rapidreporter/internal/session"
)

// labels drives pluralisation. Irregular plurals get their own entry here
// instead of a blind "s" suffix.
var labels = map[session.NoteType]struct {
	Singular string
	Plural   string
}{
	session.NoteBug:         {"Bug", "Bugs"},
	session.NoteIdea:        {"Idea", "Ideas"},
	session.NoteObservation: {"Observation", "Observations"},
	session.NoteQuestion:    {"Question", "Questions"},
	session.NoteWarning:     {"Warning", "Warnings"},
}

// iconTypes lists every note type that renders with an icon; test notes
// have none.
var iconTypes = map[session.NoteType]bool{
	session.NoteBug:         true,
	session.NoteIdea:        true,
	session.NoteObservation: true,
	session.NoteQuestion:    true,
	session.NoteWarning:     true,
}

// Render converts the session into Markdown and the list of assets the
// Markdown refers to. It is a pure function of the session value: no I/O,
// and byte-identical output for equal inputs.
//
// Screenshot links are emitted with the capture's absolute source path;
// the export packager rewrites them to the relative paths it actually
// used. Icon links use their final relative path directly since icons are
// copied under their canonical names.
func Render(s *session.Session) Report {
	var sb strings.Builder
	usedIcons := map[session.NoteType]bool{}
	var screenshots []AssetRef

	// Header: bold bullet metadata.
	fmt.Fprintf(&sb, "- **Tester:** %s\n", s.TesterName)
	fmt.Fprintf(&sb, "- **Charter:** %s\n", s.Charter)
	fmt.Fprintf(&sb, "- **Started:** %s\n", s.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "- **Duration:** %s\n", durationLabel(s.DurationMinutes))
	sb.WriteString("\n")

	// Summary: icon-type counts, omitted entirely when empty.
	counts := summaryCounts(s.Notes)
	if hasAny(counts) {
		sb.WriteString("## Summary\n\n")
		for _, t := range summaryTypes() {
			if counts[t] == 0 {
				continue
			}
			fmt.Fprintf(&sb, "%s %s\n\n", iconTag(t), pluralise(counts[t], t))
			usedIcons[t] = true
		}
	}

	// Notes: stored newest-first, rendered chronologically.
	if len(s.Notes) > 0 {
		sb.WriteString("## Notes\n\n")
		for i := len(s.Notes) - 1; i >= 0; i-- {
			n := s.Notes[i]
			switch n.Type {
			case session.NoteScreenshot:
				fmt.Fprintf(&sb, "![Screenshot](%s)\n\n", n.Text)
				screenshots = append(screenshots, AssetRef{
					Kind:               AssetScreenshot,
					SourcePath:         n.Text,
					ExportRelativePath: "assets/screenshots/" + filepath.Base(n.Text),
				})
			case session.NoteSnippet:
				fence := snippetFence(n.Text)
				sb.WriteString(fence + "\n")
				sb.WriteString(n.Text)
				if !strings.HasSuffix(n.Text, "\n") {
					sb.WriteString("\n")
				}
				sb.WriteString(fence + "\n\n")
			default:
				text := strings.TrimSpace(n.Text)
				if iconTypes[n.Type] {
					fmt.Fprintf(&sb, "%s %s\n\n", iconTag(n.Type), text)
					usedIcons[n.Type] = true
				} else {
					sb.WriteString(text + "\n\n")
				}
			}
		}
	}

	// Icon refs in canonical order keeps the manifest deterministic.
	var assets []AssetRef
	for _, t := range summaryTypes() {
		if usedIcons[t] {
			name := string(t) + ".png"
			assets = append(assets, AssetRef{
				Kind:               AssetIcon,
				SourcePath:         name,
				ExportRelativePath: "assets/icons/" + name,
			})
		}
	}
	assets = append(assets, screenshots...)

	return Report{Markdown: sb.String(), Assets: assets}
}

// summaryTypes returns the fixed summary ordering: bug, idea,
// observation, question, warning.
func summaryTypes() []session.NoteType {
	return []session.NoteType{
		session.NoteBug,
		session.NoteIdea,
		session.NoteObservation,
		session.NoteQuestion,
		session.NoteWarning,
	}
}

func summaryCounts(notes []session.Note) map[session.NoteType]int {
	counts := map[session.NoteType]int{}
	for _, n := range notes {
		if _, ok := labels[n.Type]; ok {
			counts[n.Type]++
		}
	}
	return counts
}

func hasAny(counts map[session.NoteType]int) bool {
	for _, c := range counts {
		if c > 0 {
			return true
		}
	}
	return false
}

func pluralise(count int, t session.NoteType) string {
	l := labels[t]
	if count == 1 {
		return fmt.Sprintf("%d %s", count, l.Singular)
	}
	return fmt.Sprintf("%d %s", count, l.Plural)
}

func iconTag(t session.NoteType) string {
	return fmt.Sprintf(`<img src="assets/icons/%s.png" width="50" valign="middle">`, t)
}

func durationLabel(minutes int) string {
	if minutes == 0 {
		return "No limit"
	}
	return fmt.Sprintf("%d min", minutes)
}

// snippetFence returns a fence at least one backtick longer than the
// longest backtick run inside the snippet, so a snippet containing ```
// still produces valid Markdown.
func snippetFence(text string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	n := 3
	if longest >= n {
		n = longest + 1
	}
	return strings.Repeat("`", n)
}
