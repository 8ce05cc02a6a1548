// Package session holds the in-memory model for one exploratory-testing run.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NoteType categorises a recorded observation.
type NoteType string

const (
	NoteTest        NoteType = "test"
	NoteBug         NoteType = "bug"
	NoteWarning     NoteType = "warning"
	NoteObservation NoteType = "observation"
	NoteQuestion    NoteType = "question"
	NoteIdea        NoteType = "idea"
	NoteSnippet     NoteType = "snippet"
	NoteScreenshot  NoteType = "screenshot"
)

// MaxNotes caps the number of notes held per session. The oldest note is
// dropped when the cap is exceeded.
const MaxNotes = 200

// ValidDurations lists the accepted session lengths in minutes.
// 0 means no time limit.
var ValidDurations = []int{0, 30, 60, 90, 120}

var (
	ErrEmptyTesterName = errors.New("tester name must not be empty")
	ErrShortCharter    = errors.New("charter must be at least 3 characters")
	ErrBadDuration     = errors.New("duration must be 30, 60, 90, 120 or 0 for no limit")
	ErrEmptyNote       = errors.New("note text must not be empty")
	ErrBadNoteType     = errors.New("unknown note type")
)

// Note is one categorised, timestamped observation. For screenshot notes
// Text holds the absolute path of the captured image; for snippet notes it
// holds the raw code verbatim.
type Note struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      NoteType  `json:"type"`
	Text      string    `json:"text"`
}

// Session is one exploratory-testing run and its accumulated notes.
//
// Notes are stored newest-first: AddNote prepends so the UI can show the
// most recent entry on top. The report renderer reverses back to
// chronological order; nothing at this level guarantees chronological
// storage.
type Session struct {
	TesterName      string    `json:"tester_name"`
	Charter         string    `json:"charter"`
	DurationMinutes int       `json:"duration_minutes"` // 0 = no limit
	StartedAt       time.Time `json:"started_at"`
	Notes           []Note    `json:"notes"`
}

// New validates the session metadata and returns a started session.
func New(testerName, charter string, durationMinutes int) (*Session, error) {
	testerName = strings.TrimSpace(testerName)
	charter = strings.TrimSpace(charter)

	if testerName == "" {
		return nil, ErrEmptyTesterName
	}
	if len(charter) < 3 {
		return nil, ErrShortCharter
	}
	if !validDuration(durationMinutes) {
		return nil, fmt.Errorf("%w: got %d", ErrBadDuration, durationMinutes)
	}

	return &Session{
		TesterName:      testerName,
		Charter:         charter,
		DurationMinutes: durationMinutes,
		StartedAt:       time.Now(),
		Notes:           []Note{},
	}, nil
}

func validDuration(minutes int) bool {
	for _, d := range ValidDurations {
		if minutes == d {
			return true
		}
	}
	return false
}

// AddNote validates, timestamps and prepends a new note, dropping the
// oldest entry if the session is at capacity. The returned Note carries the
// assigned ID and timestamp.
func (s *Session) AddNote(noteType NoteType, text string) (Note, error) {
	switch noteType {
	case NoteTest, NoteBug, NoteWarning, NoteObservation, NoteQuestion, NoteIdea:
		text = strings.TrimSpace(text)
		if text == "" {
			return Note{}, ErrEmptyNote
		}
	case NoteSnippet, NoteScreenshot:
		// Snippets keep their raw indentation; screenshot text is a file
		// path. Both still have to be non-empty.
		if strings.TrimSpace(text) == "" {
			return Note{}, ErrEmptyNote
		}
	default:
		return Note{}, fmt.Errorf("%w: %q", ErrBadNoteType, noteType)
	}

	n := Note{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Type:      noteType,
		Text:      text,
	}

	s.Notes = append([]Note{n}, s.Notes...)
	if len(s.Notes) > MaxNotes {
		s.Notes = s.Notes[:MaxNotes]
	}
	return n, nil
}

// TimeLimit returns the session's duration as a time.Duration and whether a
// limit is set at all.
func (s *Session) TimeLimit() (time.Duration, bool) {
	if s.DurationMinutes == 0 {
		return 0, false
	}
	return time.Duration(s.DurationMinutes) * time.Minute, true
}
