// Package extractor opportunistically fills job-posting fields from free-form
// conversation text. A miss is never an error: text with no matching rule
// yields an empty partial and leaves the draft untouched.
package extractor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hirehub/voice-agents/internal/models"
)

// Extract applies the rule families in their fixed priority order and returns
// a partial draft holding only what matched.
func Extract(text string) models.JobPostingDraft {
	var out models.JobPostingDraft
	lower := strings.ToLower(text)

	for _, r := range jobTypeRules {
		if strings.Contains(lower, r.keyword) {
			out.JobType = r.value
			break
		}
	}

	for _, r := range experienceRules {
		if strings.Contains(lower, r.keyword) {
			out.ExperienceLevel = r.value
			break
		}
	}

	for _, kw := range remoteKeywords {
		if strings.Contains(lower, kw) {
			out.RemoteAllowed = true
			break
		}
	}

	if lo, hi, ok := extractSalary(lower); ok {
		out.SalaryMin = &lo
		out.SalaryMax = &hi
	}

	return out
}

// extractSalary tries the salary patterns in order. The "k"/"thousand"
// multiplier is a global flag over the whole text, not scoped to the match.
func extractSalary(lower string) (int, int, bool) {
	stripped := strings.ReplaceAll(lower, ",", "")
	mult := 1
	if strings.Contains(lower, "k") || strings.Contains(lower, "thousand") {
		mult = 1000
	}

	for _, pat := range salaryPatterns {
		groups := pat.FindStringSubmatch(stripped)
		if groups == nil {
			continue
		}
		var nums []int
		for _, g := range groups[1:] {
			if g == "" {
				continue
			}
			n, err := strconv.Atoi(g)
			if err != nil {
				continue
			}
			nums = append(nums, n)
		}
		if len(nums) >= 2 {
			return nums[0] * mult, nums[1] * mult, true
		}
	}
	return 0, 0, false
}

// Merge overwrites each draft field whose extracted value is set: non-empty
// strings and collections, present numbers, true booleans. Absent extracted
// values never erase an existing draft value.
func Merge(draft *models.JobPostingDraft, partial models.JobPostingDraft) {
	if partial.Title != "" {
		draft.Title = partial.Title
	}
	if partial.Description != "" {
		draft.Description = partial.Description
	}
	if partial.Requirements != "" {
		draft.Requirements = partial.Requirements
	}
	if partial.JobType != "" {
		draft.JobType = partial.JobType
	}
	if partial.ExperienceLevel != "" {
		draft.ExperienceLevel = partial.ExperienceLevel
	}
	if partial.SalaryMin != nil {
		draft.SalaryMin = partial.SalaryMin
	}
	if partial.SalaryMax != nil {
		draft.SalaryMax = partial.SalaryMax
	}
	if partial.Location != "" {
		draft.Location = partial.Location
	}
	if partial.RemoteAllowed {
		draft.RemoteAllowed = true
	}
	if len(partial.SkillsRequired) > 0 {
		draft.SkillsRequired = partial.SkillsRequired
	}
	if len(partial.SkillsPreferred) > 0 {
		draft.SkillsPreferred = partial.SkillsPreferred
	}
}

// Completion reports how many of the nine tracked fields are filled, as an
// integer percentage.
func Completion(draft models.JobPostingDraft) int {
	total := 9
	filled := 0
	if draft.Title != "" {
		filled++
	}
	if draft.Description != "" {
		filled++
	}
	if draft.Requirements != "" {
		filled++
	}
	if draft.JobType != "" {
		filled++
	}
	if draft.ExperienceLevel != "" {
		filled++
	}
	if draft.Location != "" {
		filled++
	}
	if len(draft.SkillsRequired) > 0 {
		filled++
	}
	if len(draft.SkillsPreferred) > 0 {
		filled++
	}
	if draft.SalaryMin != nil || draft.SalaryMax != nil {
		filled++
	}
	return filled * 100 / total
}

// MissingFields names the core fields still needed, in gathering order.
func MissingFields(draft models.JobPostingDraft) []string {
	var missing []string
	if draft.Title == "" {
		missing = append(missing, "job title")
	}
	if draft.Description == "" {
		missing = append(missing, "job description")
	}
	if draft.Requirements == "" {
		missing = append(missing, "requirements")
	}
	if draft.JobType == "" {
		missing = append(missing, "job type")
	}
	return missing
}

const notSpecified = "Not specified"

// Summarize renders every field for read-back confirmation. Absent fields
// show an explicit placeholder rather than being omitted.
func Summarize(draft models.JobPostingDraft) string {
	skillsReq := notSpecified
	if len(draft.SkillsRequired) > 0 {
		skillsReq = strings.Join(draft.SkillsRequired, ", ")
	}
	skillsPref := notSpecified
	if len(draft.SkillsPreferred) > 0 {
		skillsPref = strings.Join(draft.SkillsPreferred, ", ")
	}

	salary := notSpecified
	switch {
	case draft.SalaryMin != nil && draft.SalaryMax != nil:
		salary = fmt.Sprintf("$%s - $%s per year", groupThousands(*draft.SalaryMin), groupThousands(*draft.SalaryMax))
	case draft.SalaryMin != nil:
		salary = fmt.Sprintf("Starting at $%s per year", groupThousands(*draft.SalaryMin))
	}

	jobType := notSpecified
	if draft.JobType != "" {
		jobType = strings.ReplaceAll(string(draft.JobType), "_", "-")
	}
	level := notSpecified
	if draft.ExperienceLevel != "" {
		level = string(draft.ExperienceLevel)
	}
	location := notSpecified
	if draft.Location != "" {
		location = draft.Location
	}
	remote := "No"
	if draft.RemoteAllowed {
		remote = "Yes"
	}
	description := "Not provided"
	if draft.Description != "" {
		description = draft.Description
	}
	requirements := "Not provided"
	if draft.Requirements != "" {
		requirements = draft.Requirements
	}
	title := notSpecified
	if draft.Title != "" {
		title = draft.Title
	}

	return fmt.Sprintf(`Here's your complete job posting:

**Position:** %s
**Employment Type:** %s
**Experience Level:** %s
**Location:** %s
**Remote Work Allowed:** %s
**Salary Range:** %s

**Job Description:**
%s

**Requirements:**
%s

**Required Skills:** %s
**Preferred Skills:** %s

Does this look correct? Would you like to make any changes, or shall I submit this job posting?`,
		title, jobType, level, location, remote, salary, description, requirements, skillsReq, skillsPref)
}

// groupThousands formats 120000 as "120,000".
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
