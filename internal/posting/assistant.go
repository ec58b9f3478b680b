package posting

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hirehub/voice-agents/internal/extractor"
	"github.com/hirehub/voice-agents/internal/models"
)

// Submitter is the jobs API collaborator.
type Submitter interface {
	Submit(ctx context.Context, draft models.JobPostingDraft) SubmitResult
}

// Intent phrase tables. Evaluated in the order review -> confirm -> change;
// the review table deliberately intercepts bare "submit"/"post it" so the
// posting is read back before an explicit confirmation phrase triggers the
// actual submission.
var (
	reviewPhrases  = []string{"review", "summary", "read it back", "what do we have", "looks good", "submit", "post it", "create it"}
	confirmPhrases = []string{"yes, submit", "yes submit", "looks perfect", "submit it", "post the job", "create the job", "yes, that's correct"}
	changePhrases  = []string{"change", "update", "modify", "edit", "different"}
)

// submitThreshold is the completion percentage required before a summary is
// read back or a submission is attempted.
const submitThreshold = 70

// Assistant holds the draft under construction for one posting session and
// decides, per recruiter turn, whether a scripted reply is needed or the
// hosted model should keep the conversation going on its own.
type Assistant struct {
	client Submitter
	log    *logrus.Entry

	mu    sync.Mutex
	draft models.JobPostingDraft
}

func NewAssistant(client Submitter, logger *logrus.Logger) *Assistant {
	if logger == nil {
		logger = logrus.New()
	}
	return &Assistant{
		client: client,
		log:    logger.WithField("component", "posting-assistant"),
	}
}

// Draft returns a snapshot of the current draft.
func (a *Assistant) Draft() models.JobPostingDraft {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.draft
}

func (a *Assistant) Completion() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return extractor.Completion(a.draft)
}

// ProcessTurn folds a recruiter utterance into the draft and returns the
// scripted reply content for this turn. An empty return means no scripted
// reply applies and the model should continue the conversation naturally.
func (a *Assistant) ProcessTurn(ctx context.Context, text string) string {
	lower := strings.ToLower(text)

	a.mu.Lock()
	extractor.Merge(&a.draft, extractor.Extract(text))
	draft := a.draft
	completion := extractor.Completion(a.draft)
	a.mu.Unlock()

	if containsAny(lower, reviewPhrases) {
		if completion >= submitThreshold {
			return extractor.Summarize(draft)
		}
		missing := extractor.MissingFields(draft)
		return fmt.Sprintf("We're about %d%% complete. We still need to gather: %s. Let's continue with those details.",
			completion, strings.Join(missing, ", "))
	}

	if containsAny(lower, confirmPhrases) {
		if completion < submitThreshold {
			return "I'd like to make sure we have all the essential information before submitting. Let's fill in a few more details first."
		}
		result := a.client.Submit(ctx, draft)
		if result.Success {
			a.log.Info("job posting submitted")
			return "Excellent! Your job posting has been successfully created and is now live. Candidates can start applying right away. You can view and manage your posting in the recruiter dashboard. Is there anything else I can help you with?"
		}
		// Draft stays intact so the recruiter can retry.
		a.log.WithField("error", result.Error).Warn("job posting submission failed")
		return fmt.Sprintf("I encountered an issue submitting your job posting: %s. Would you like me to try again, or would you prefer to make any changes first?", result.Error)
	}

	if containsAny(lower, changePhrases) {
		return "Of course! What would you like to change? You can say something like 'change the title' or 'update the salary range' and I'll help you modify it."
	}

	return ""
}

// ContextInstructions builds the steering prompt handed to the hosted model
// when no scripted reply applies, so it keeps gathering missing information.
func (a *Assistant) ContextInstructions() string {
	a.mu.Lock()
	draft := a.draft
	completion := extractor.Completion(a.draft)
	a.mu.Unlock()

	return fmt.Sprintf(`Continue the conversation naturally.

Current job posting progress: %d%% complete.

Current job data collected:
- Title: %s
- Description: %s
- Requirements: %s
- Job Type: %s
- Experience Level: %s
- Location: %s
- Skills: %d required, %d preferred

Guide the conversation naturally to gather missing information. Be encouraging and ask follow-up questions.`,
		completion,
		orNotProvided(draft.Title),
		checkmark(draft.Description != ""),
		checkmark(draft.Requirements != ""),
		orNotProvided(string(draft.JobType)),
		orNotProvided(string(draft.ExperienceLevel)),
		orNotProvided(draft.Location),
		len(draft.SkillsRequired), len(draft.SkillsPreferred))
}

func containsAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

func checkmark(set bool) string {
	if set {
		return "set"
	}
	return "missing"
}
