package interview

import (
	"fmt"

	"github.com/hirehub/voice-agents/internal/models"
)

// genericSkill is the subject used when neither the job nor the resume lists
// any skill.
const genericSkill = "your technical skills"

// primarySkill picks the subject of the technical question: the first required
// skill the candidate also lists (required-skill order is the tie-break), then
// the candidate's first listed skill, then the generic phrase.
func primarySkill(required, candidate []string) string {
	have := make(map[string]struct{}, len(candidate))
	for _, s := range candidate {
		have[s] = struct{}{}
	}
	for _, s := range required {
		if _, ok := have[s]; ok {
			return s
		}
	}
	if len(candidate) > 0 {
		return candidate[0]
	}
	return genericSkill
}

// GenerateQuestions expands the fixed six-question interview plan from the job
// and resume data. The sequence is generated once per session and never
// mutated.
func GenerateQuestions(job models.JobContext, resume models.Resume) []models.QuestionRecord {
	title := job.TitleOrDefault()
	company := job.CompanyOrDefault()
	skill := primarySkill(job.SkillsRequired, resume.Skills)

	return []models.QuestionRecord{
		{
			ID:               "intro",
			Question:         fmt.Sprintf("Hello! Welcome to your interview for the %s position at %s. To start, could you please introduce yourself and tell me why you're interested in this role?", title, company),
			Category:         models.CategoryIntroduction,
			ExpectedDuration: 60,
		},
		{
			ID:               "technical",
			Question:         fmt.Sprintf("I see you have experience with %s. Can you walk me through a specific project where you used %s and describe the challenges you faced?", skill, skill),
			Category:         models.CategoryTechnical,
			ExpectedDuration: 90,
		},
		{
			ID:               "experience",
			Question:         fmt.Sprintf("How do you think your background and experience align with what we're looking for in this %s role?", title),
			Category:         models.CategoryExperience,
			ExpectedDuration: 75,
		},
		{
			ID:               "problem_solving",
			Question:         "Describe a time when you had to solve a difficult technical problem. What was your approach and what did you learn from it?",
			Category:         models.CategoryProblemSolving,
			ExpectedDuration: 90,
		},
		{
			ID:               "teamwork",
			Question:         fmt.Sprintf("At %s, collaboration is important. Can you tell me about a time when you worked effectively with a team to achieve a goal?", company),
			Category:         models.CategoryBehavioral,
			ExpectedDuration: 75,
		},
		{
			ID:               "goals",
			Question:         "Where do you see your career heading in the next few years, and how does this position fit into those goals?",
			Category:         models.CategoryCareerGoals,
			ExpectedDuration: 60,
		},
	}
}

// Cursor walks a fixed question sequence one step at a time. The index is
// monotonically non-decreasing; no upper bound is enforced here, callers check
// completion through Current or Progress.
type Cursor struct {
	questions []models.QuestionRecord
	index     int
}

func NewCursor(questions []models.QuestionRecord) *Cursor {
	return &Cursor{questions: questions}
}

// Current returns the question at the cursor, or nil once the cursor has moved
// past the end.
func (c *Cursor) Current() *models.QuestionRecord {
	if c.index < len(c.questions) {
		q := c.questions[c.index]
		return &q
	}
	return nil
}

// Advance moves the cursor forward by one. Advancing past the end is a benign
// no-op as far as Current is concerned.
func (c *Cursor) Advance() {
	c.index++
}

func (c *Cursor) Progress() models.Progress {
	total := len(c.questions)
	pct := 100
	if c.index < total {
		pct = c.index * 100 / total
	}
	return models.Progress{
		Current:    c.index + 1,
		Total:      total,
		Percentage: pct,
		Completed:  c.index >= total,
	}
}
