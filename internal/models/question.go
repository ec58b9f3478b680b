package models

import "time"

type QuestionCategory string

const (
	CategoryIntroduction   QuestionCategory = "introduction"
	CategoryTechnical      QuestionCategory = "technical"
	CategoryExperience     QuestionCategory = "experience"
	CategoryProblemSolving QuestionCategory = "problem_solving"
	CategoryBehavioral     QuestionCategory = "behavioral"
	CategoryCareerGoals    QuestionCategory = "career_goals"
)

// QuestionRecord is one entry of the fixed question sequence generated at
// session start. Records are never mutated after generation.
type QuestionRecord struct {
	ID               string           `json:"id"`
	Question         string           `json:"question"`
	Category         QuestionCategory `json:"category"`
	ExpectedDuration int              `json:"expected_duration"` // seconds
}

// Progress is the snapshot returned by progress queries. For interviews,
// Current is the 1-based ordinal of the question being asked (total+1 once the
// interview is done); for postings it is the number of draft fields filled.
type Progress struct {
	Current    int  `json:"current"`
	Total      int  `json:"total"`
	Percentage int  `json:"percentage"`
	Completed  bool `json:"completed"`
}

type Speaker string

const (
	SpeakerInterviewer Speaker = "interviewer"
	SpeakerCandidate   Speaker = "candidate"
)

// TranscriptEntry is one recorded utterance. Entries are append-only and kept
// in strict chronological order; the order itself is the record of turn-taking.
type TranscriptEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Speaker    Speaker   `json:"speaker"`
	Content    string    `json:"content"`
	QuestionID string    `json:"question_id,omitempty"`
}
