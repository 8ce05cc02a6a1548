// Package tui provides the Bubble Tea session console: note entry, capture
// triggers and the end-of-session export.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/rapidreporter/internal/capture"
	"github.com/fakeyudi/rapidreporter/internal/config"
	"github.com/fakeyudi/rapidreporter/internal/export"
	"github.com/fakeyudi/rapidreporter/internal/session"
)

// ── Styles ────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	timeLowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	typeBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	noteTypeStyles = map[session.NoteType]lipgloss.Style{
		session.NoteTest:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
		session.NoteBug:         lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		session.NoteWarning:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		session.NoteObservation: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		session.NoteQuestion:    lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true),
		session.NoteIdea:        lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		session.NoteSnippet:     lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		session.NoteScreenshot:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
	}
)

// entryTypes lists the note types the user can cycle through for typed
// entry. Screenshot notes only come from the capture keys.
var entryTypes = []session.NoteType{
	session.NoteTest,
	session.NoteBug,
	session.NoteWarning,
	session.NoteObservation,
	session.NoteQuestion,
	session.NoteIdea,
	session.NoteSnippet,
}

// ── Messages ─────────

type tickMsg time.Time

type captureDoneMsg struct {
	path string // empty when the user cancelled the OS snip
	err  error
}

type exportDoneMsg struct {
	result export.ExportResult
	err    error
}

// ── Model ────────────

// Model is the root Bubble Tea model for a running session.
type Model struct {
	sess     *session.Session
	cfg      config.Config
	provider capture.ScreenshotProvider
	cropper  capture.Cropper

	input    textinput.Model
	notes    viewport.Model
	typeIdx  int
	width    int
	height   int
	ready    bool
	status   string
	// capturing gates the capture keys so two grabs can't run at once.
	capturing bool
	exporting bool

	// Result carries the export outcome out of the program.
	Result    *export.ExportResult
	ExportErr error
}

// New creates the session console model.
func New(sess *session.Session, cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "type a note, enter to record"
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		sess:     sess,
		cfg:      cfg,
		provider: capture.NewDisplayProvider(cfg.ScreenshotDir),
		cropper:  capture.FileCropper{},
		input:    ti,
	}
}

// ── Bubble Tea interface ───────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.typeIdx = (m.typeIdx + 1) % len(entryTypes)
			return m, nil
		case "shift+tab":
			m.typeIdx = (m.typeIdx - 1 + len(entryTypes)) % len(entryTypes)
			return m, nil

		case "enter":
			text := m.input.Value()
			if _, err := m.sess.AddNote(entryTypes[m.typeIdx], text); err != nil {
				if errors.Is(err, session.ErrEmptyNote) {
					return m, nil
				}
				m.status = errStyle.Render(err.Error())
				return m, nil
			}
			m.input.Reset()
			m.status = ""
			m.rebuildNotes()
			return m, nil

		case "ctrl+s":
			if m.capturing || m.exporting {
				return m, nil
			}
			m.capturing = true
			m.status = "capturing screen…"
			return m, m.captureScreen()

		case "ctrl+r":
			if m.capturing || m.exporting {
				return m, nil
			}
			m.capturing = true
			m.status = "waiting for snip…"
			return m, m.captureSnip()

		case "ctrl+e":
			if m.capturing || m.exporting {
				return m, nil
			}
			m.exporting = true
			m.status = "exporting…"
			return m, m.export()
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tickMsg:
		return m, tick()

	case captureDoneMsg:
		m.capturing = false
		switch {
		case msg.err != nil:
			m.status = errStyle.Render(msg.err.Error())
		case msg.path == "":
			// Snip cancelled or timed out: no note, no error.
			m.status = dimStyle.Render("capture cancelled")
		default:
			if _, err := m.sess.AddNote(session.NoteScreenshot, msg.path); err != nil {
				m.status = errStyle.Render(err.Error())
			} else {
				m.status = "screenshot recorded"
				m.rebuildNotes()
			}
		}
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			// The session is untouched; the user can fix the cause and
			// press ctrl+e again.
			m.ExportErr = msg.err
			m.status = errStyle.Render(msg.err.Error())
			return m, nil
		}
		m.Result = &msg.result
		m.ExportErr = nil
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		// title(1) + meta(1) + input(1) + status(1) = 4 fixed rows
		vpHeight := m.height - 4
		if vpHeight < 1 {
			vpHeight = 1
		}
		m.notes = viewport.New(m.width, vpHeight)
		m.input.Width = m.width - 20
		m.rebuildNotes()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ── Commands ──────────

// captureScreen grabs a full frame of the first monitor and copies it
// under a unique name so later frames can't overwrite it.
func (m Model) captureScreen() tea.Cmd {
	provider := m.provider
	return func() tea.Msg {
		ctx := context.Background()
		monitors, err := provider.Monitors(ctx)
		if err != nil {
			return captureDoneMsg{err: err}
		}
		frame, err := provider.CaptureMonitor(ctx, monitors[0].ID)
		if err != nil {
			return captureDoneMsg{err: err}
		}
		path, err := capture.UniqueCopy(frame)
		if err != nil {
			return captureDoneMsg{err: err}
		}
		return captureDoneMsg{path: path}
	}
}

// captureSnip hands off to the OS-native snipping flow where available.
func (m Model) captureSnip() tea.Cmd {
	dir := m.cfg.ScreenshotDir
	timeout := time.Duration(m.cfg.SnipTimeoutMS) * time.Millisecond
	return func() tea.Msg {
		path, err := capture.InteractiveSnip(context.Background(), dir, timeout)
		return captureDoneMsg{path: path, err: err}
	}
}

func (m Model) export() tea.Cmd {
	sess := m.sess
	outputDir := m.cfg.OutputDir
	return func() tea.Msg {
		result, err := export.Session(context.Background(), sess, outputDir, time.Now())
		return exportDoneMsg{result: result, err: err}
	}
}

// ── View ──────────────

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  rapid reporter  " + m.sess.Charter)

	meta := fmt.Sprintf("tester %s · %d notes · %s",
		m.sess.TesterName, len(m.sess.Notes), m.remaining())
	metaRow := metaStyle.Width(m.width).Render(meta)

	badge := typeBadgeStyle.Render(string(entryTypes[m.typeIdx]))
	inputRow := badge + " " + m.input.View()

	hint := "  enter record  tab type  ^S screen  ^R region  ^E export  esc quit"
	status := m.status
	if status == "" {
		status = dimStyle.Render(hint)
	}
	statusBar := statusBarStyle.Width(m.width).Render(status)

	return lipgloss.JoinVertical(lipgloss.Left, title, metaRow, m.notes.View(), inputRow, statusBar)
}

// remaining formats the countdown, or the elapsed time for unlimited
// sessions.
func (m Model) remaining() string {
	elapsed := time.Since(m.sess.StartedAt).Round(time.Second)
	limit, ok := m.sess.TimeLimit()
	if !ok {
		return timeStyle.Render(fmt.Sprintf("elapsed %s", elapsed))
	}
	left := limit - elapsed
	if left <= 0 {
		return timeLowStyle.Render("time is up")
	}
	style := timeStyle
	if left < 5*time.Minute {
		style = timeLowStyle
	}
	return style.Render(fmt.Sprintf("remaining %s", left.Round(time.Second)))
}

// rebuildNotes refreshes the viewport with the session's notes, newest
// first, exactly as stored.
func (m *Model) rebuildNotes() {
	var sb strings.Builder
	if len(m.sess.Notes) == 0 {
		sb.WriteString(dimStyle.Render("  (no notes yet)") + "\n")
	}
	for _, n := range m.sess.Notes {
		ts := timeStyle.Render(n.Timestamp.Format("15:04:05"))
		badge := noteTypeStyles[n.Type].Render(fmt.Sprintf("%-11s", string(n.Type)))
		text := n.Text
		if n.Type == session.NoteSnippet {
			first, _, multi := strings.Cut(text, "\n")
			text = first
			if multi {
				text += dimStyle.Render(" …")
			}
		}
		sb.WriteString(fmt.Sprintf("  %s  %s  %s\n", ts, badge, text))
	}
	m.notes.SetContent(sb.String())
	m.notes.GotoTop()
}

// Run starts the session console and blocks until the user quits or
// exports. It returns the export result when one was produced.
func Run(sess *session.Session, cfg config.Config) (*export.ExportResult, error) {
	p := tea.NewProgram(New(sess, cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	if m.ExportErr != nil {
		return nil, m.ExportErr
	}
	return m.Result, nil
}
