package interview

import (
	"strings"
	"testing"

	"github.com/hirehub/voice-agents/internal/models"
)

func TestGenerateQuestionsPlan(t *testing.T) {
	job := models.JobContext{Title: "Backend Engineer", Company: "Acme", SkillsRequired: []string{"Go", "SQL"}}
	resume := models.Resume{Name: "Sam", Skills: []string{"SQL", "Go"}}

	qs := GenerateQuestions(job, resume)
	if len(qs) != 6 {
		t.Fatalf("expected 6 questions, got %d", len(qs))
	}

	wantOrder := []struct {
		id       string
		category models.QuestionCategory
		duration int
	}{
		{"intro", models.CategoryIntroduction, 60},
		{"technical", models.CategoryTechnical, 90},
		{"experience", models.CategoryExperience, 75},
		{"problem_solving", models.CategoryProblemSolving, 90},
		{"teamwork", models.CategoryBehavioral, 75},
		{"goals", models.CategoryCareerGoals, 60},
	}
	for i, want := range wantOrder {
		if qs[i].ID != want.id {
			t.Errorf("question %d: id = %q, want %q", i, qs[i].ID, want.id)
		}
		if qs[i].Category != want.category {
			t.Errorf("question %d: category = %q, want %q", i, qs[i].Category, want.category)
		}
		if qs[i].ExpectedDuration != want.duration {
			t.Errorf("question %d: duration = %d, want %d", i, qs[i].ExpectedDuration, want.duration)
		}
	}

	if !strings.Contains(qs[0].Question, "Backend Engineer") || !strings.Contains(qs[0].Question, "Acme") {
		t.Errorf("intro question missing title/company: %q", qs[0].Question)
	}
	if !strings.Contains(qs[1].Question, "Go") {
		t.Errorf("technical question missing matched skill: %q", qs[1].Question)
	}
	if !strings.Contains(qs[4].Question, "Acme") {
		t.Errorf("teamwork question missing company: %q", qs[4].Question)
	}
}

func TestGenerateQuestionsDefaults(t *testing.T) {
	qs := GenerateQuestions(models.JobContext{}, models.Resume{})

	if !strings.Contains(qs[0].Question, "this position") {
		t.Errorf("intro question missing default title: %q", qs[0].Question)
	}
	if !strings.Contains(qs[0].Question, "our company") {
		t.Errorf("intro question missing default company: %q", qs[0].Question)
	}
	if !strings.Contains(qs[1].Question, "your technical skills") {
		t.Errorf("technical question missing generic skill: %q", qs[1].Question)
	}
}

func TestPrimarySkill(t *testing.T) {
	tests := []struct {
		name      string
		required  []string
		candidate []string
		want      string
	}{
		{"first required match wins", []string{"Python", "SQL"}, []string{"SQL", "Go"}, "SQL"},
		{"required order is the tie-break", []string{"Go", "SQL"}, []string{"SQL", "Go"}, "Go"},
		{"disjoint falls back to candidate's first", []string{"Rust"}, []string{"Java", "C"}, "Java"},
		{"no candidate skills", []string{"Rust"}, nil, "your technical skills"},
		{"nothing at all", nil, nil, "your technical skills"},
		{"exact match only", []string{"go"}, []string{"Go"}, "Go"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := primarySkill(tt.required, tt.candidate); got != tt.want {
				t.Errorf("primarySkill(%v, %v) = %q, want %q", tt.required, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestCursorWalk(t *testing.T) {
	qs := GenerateQuestions(models.JobContext{}, models.Resume{})
	c := NewCursor(qs)

	for i := 0; i < len(qs); i++ {
		q := c.Current()
		if q == nil {
			t.Fatalf("Current() = nil at index %d", i)
		}
		if q.ID != qs[i].ID {
			t.Errorf("Current() at %d = %q, want %q", i, q.ID, qs[i].ID)
		}
		p := c.Progress()
		if p.Completed {
			t.Errorf("Completed true at index %d", i)
		}
		if p.Current != i+1 {
			t.Errorf("Current at %d = %d, want %d", i, p.Current, i+1)
		}
		if want := i * 100 / len(qs); p.Percentage != want {
			t.Errorf("Percentage at %d = %d, want %d", i, p.Percentage, want)
		}
		c.Advance()
	}

	if c.Current() != nil {
		t.Error("Current() past end should be nil")
	}
	p := c.Progress()
	if !p.Completed || p.Percentage != 100 {
		t.Errorf("progress past end = %+v, want completed at 100%%", p)
	}
	if p.Current != len(qs)+1 {
		t.Errorf("Current past end = %d, want %d", p.Current, len(qs)+1)
	}

	// advancing past the end stays benign
	c.Advance()
	if c.Current() != nil {
		t.Error("Current() after extra advance should be nil")
	}
	if got := c.Progress().Percentage; got != 100 {
		t.Errorf("Percentage after extra advance = %d, want 100", got)
	}
}
