package posting

import (
	"context"
	"strings"
	"testing"

	"github.com/hirehub/voice-agents/internal/models"
)

type fakeSubmitter struct {
	result SubmitResult
	calls  int
	last   models.JobPostingDraft
}

func (f *fakeSubmitter) Submit(ctx context.Context, draft models.JobPostingDraft) SubmitResult {
	f.calls++
	f.last = draft
	return f.result
}

func fillDraft(a *Assistant) {
	// seven of the nine fields, comfortably past the readiness threshold
	min, max := 120000, 150000
	a.mu.Lock()
	a.draft = models.JobPostingDraft{
		Title:           "Backend Engineer",
		Description:     "Build the platform",
		Requirements:    "5 years of Go",
		JobType:         models.JobTypeFullTime,
		ExperienceLevel: models.ExperienceSenior,
		SalaryMin:       &min,
		SalaryMax:       &max,
		Location:        "Berlin",
	}
	a.mu.Unlock()
}

func TestProcessTurnExtractsIntoDraft(t *testing.T) {
	a := NewAssistant(&fakeSubmitter{}, nil)

	reply := a.ProcessTurn(context.Background(), "it's a full-time senior role, fully remote, 120k to 150k")
	if reply != "" {
		t.Errorf("plain gathering turn should have no scripted reply, got %q", reply)
	}

	d := a.Draft()
	if d.JobType != models.JobTypeFullTime || d.ExperienceLevel != models.ExperienceSenior {
		t.Errorf("draft = %+v", d)
	}
	if !d.RemoteAllowed {
		t.Error("remote not captured")
	}
	if d.SalaryMin == nil || *d.SalaryMin != 120000 {
		t.Errorf("salary min = %v", d.SalaryMin)
	}
}

func TestProcessTurnReviewBelowThreshold(t *testing.T) {
	a := NewAssistant(&fakeSubmitter{}, nil)

	reply := a.ProcessTurn(context.Background(), "can you give me a summary?")
	if !strings.Contains(reply, "We still need to gather:") {
		t.Errorf("reply = %q", reply)
	}
	if !strings.Contains(reply, "job title") {
		t.Errorf("reply should name the missing fields: %q", reply)
	}
}

func TestProcessTurnReviewReadsBackWhenReady(t *testing.T) {
	a := NewAssistant(&fakeSubmitter{}, nil)
	fillDraft(a)

	reply := a.ProcessTurn(context.Background(), "read it back to me")
	if !strings.Contains(reply, "Here's your complete job posting:") {
		t.Errorf("reply = %q", reply)
	}
	if !strings.Contains(reply, "Backend Engineer") {
		t.Errorf("summary missing title: %q", reply)
	}
}

func TestProcessTurnBareSubmitTriggersReviewFirst(t *testing.T) {
	sub := &fakeSubmitter{result: SubmitResult{Success: true}}
	a := NewAssistant(sub, nil)
	fillDraft(a)

	reply := a.ProcessTurn(context.Background(), "submit")
	if sub.calls != 0 {
		t.Fatal("bare submit must read back, not submit")
	}
	if !strings.Contains(reply, "Does this look correct?") {
		t.Errorf("reply = %q", reply)
	}
}

func TestProcessTurnConfirmSubmits(t *testing.T) {
	sub := &fakeSubmitter{result: SubmitResult{Success: true}}
	a := NewAssistant(sub, nil)
	fillDraft(a)

	reply := a.ProcessTurn(context.Background(), "looks perfect")
	if sub.calls != 1 {
		t.Fatalf("submit calls = %d, want 1", sub.calls)
	}
	if sub.last.Title != "Backend Engineer" {
		t.Errorf("submitted draft = %+v", sub.last)
	}
	if !strings.Contains(reply, "successfully created") {
		t.Errorf("reply = %q", reply)
	}
}

func TestProcessTurnConfirmBelowThreshold(t *testing.T) {
	sub := &fakeSubmitter{result: SubmitResult{Success: true}}
	a := NewAssistant(sub, nil)

	reply := a.ProcessTurn(context.Background(), "yes, that's correct")
	if sub.calls != 0 {
		t.Fatal("incomplete draft must not be submitted")
	}
	if !strings.Contains(reply, "essential information before submitting") {
		t.Errorf("reply = %q", reply)
	}
}

func TestProcessTurnSubmissionFailurePreservesDraft(t *testing.T) {
	sub := &fakeSubmitter{result: SubmitResult{Success: false, Error: "API error 500: boom"}}
	a := NewAssistant(sub, nil)
	fillDraft(a)

	reply := a.ProcessTurn(context.Background(), "post the job")
	if !strings.Contains(reply, "I encountered an issue submitting your job posting: API error 500: boom") {
		t.Errorf("reply = %q", reply)
	}
	if a.Draft().Title != "Backend Engineer" {
		t.Error("draft must survive a failed submission")
	}
}

func TestProcessTurnChangeIntent(t *testing.T) {
	a := NewAssistant(&fakeSubmitter{}, nil)

	reply := a.ProcessTurn(context.Background(), "I want to change the title")
	if !strings.Contains(reply, "What would you like to change?") {
		t.Errorf("reply = %q", reply)
	}
}

func TestContextInstructions(t *testing.T) {
	a := NewAssistant(&fakeSubmitter{}, nil)
	a.ProcessTurn(context.Background(), "full-time senior role in Berlin")

	instr := a.ContextInstructions()
	if !strings.Contains(instr, "Current job posting progress:") {
		t.Errorf("instructions = %q", instr)
	}
	if !strings.Contains(instr, "Full_time") {
		t.Errorf("instructions missing job type: %q", instr)
	}
}
