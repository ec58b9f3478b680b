package interview

import (
	"strings"
	"time"

	"github.com/hirehub/voice-agents/internal/models"
)

// Recorder is the append-only transcript log. Entries are never reordered,
// mutated, or compacted.
type Recorder struct {
	entries []models.TranscriptEntry
	now     func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// Record appends one entry stamped with the current wall clock. Empty text is
// a no-op: an empty utterance means "ignore this turn", not "record an empty
// turn".
func (r *Recorder) Record(speaker models.Speaker, text, questionID string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	r.entries = append(r.entries, models.TranscriptEntry{
		Timestamp:  r.now().UTC(),
		Speaker:    speaker,
		Content:    text,
		QuestionID: questionID,
	})
	return true
}

// Transcript returns a snapshot of the entries in append order.
func (r *Recorder) Transcript() []models.TranscriptEntry {
	out := make([]models.TranscriptEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Recorder) Len() int { return len(r.entries) }

// Text renders the transcript as "Speaker: content" lines, one per entry.
// Used to hand the full conversation to the analysis prompt.
func (r *Recorder) Text() string {
	var b strings.Builder
	for i, e := range r.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		switch e.Speaker {
		case models.SpeakerInterviewer:
			b.WriteString("Interviewer: ")
		default:
			b.WriteString("Candidate: ")
		}
		b.WriteString(e.Content)
	}
	return b.String()
}
