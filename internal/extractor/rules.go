package extractor

import (
	"regexp"

	"github.com/hirehub/voice-agents/internal/models"
)

// keywordRule maps a lowercase substring to the value it implies. Rules are
// evaluated in slice order and the first match wins; order is part of the
// contract because keywords can be substrings of each other ("part" vs
// "part-time").
type keywordRule[T ~string] struct {
	keyword string
	value   T
}

var jobTypeRules = []keywordRule[models.JobType]{
	{"full", models.JobTypeFullTime},
	{"full-time", models.JobTypeFullTime},
	{"full time", models.JobTypeFullTime},
	{"part", models.JobTypePartTime},
	{"part-time", models.JobTypePartTime},
	{"part time", models.JobTypePartTime},
	{"contract", models.JobTypeContractor},
	{"contractor", models.JobTypeContractor},
	{"freelance", models.JobTypeFreelance},
	{"intern", models.JobTypeInternship},
	{"internship", models.JobTypeInternship},
}

var experienceRules = []keywordRule[models.ExperienceLevel]{
	{"entry", models.ExperienceEntry},
	{"junior", models.ExperienceEntry},
	{"beginner", models.ExperienceEntry},
	{"new grad", models.ExperienceEntry},
	{"graduate", models.ExperienceEntry},
	{"mid", models.ExperienceMid},
	{"middle", models.ExperienceMid},
	{"intermediate", models.ExperienceMid},
	{"senior", models.ExperienceSenior},
	{"sr", models.ExperienceSenior},
	{"lead", models.ExperienceSenior},
	{"executive", models.ExperienceExecutive},
	{"principal", models.ExperienceExecutive},
	{"director", models.ExperienceExecutive},
	{"vp", models.ExperienceExecutive},
	{"c-level", models.ExperienceExecutive},
}

// remoteKeywords set the remote flag when any of them is present; this family
// is any-match, not first-match.
var remoteKeywords = []string{"remote", "anywhere", "work from home", "wfh", "distributed", "virtual"}

// salaryPatterns are tried in order against the lowercased, comma-stripped
// text; the first pattern yielding at least two captured numbers wins.
var salaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)k?\s*(?:to|-)\s*(\d+)k?`),               // "120k to 150k", "120-150"
	regexp.MustCompile(`\$(\d+),?(\d+)?\s*(?:to|-)\s*\$?(\d+),?(\d+)?`), // "$120,000 to $150,000"
	regexp.MustCompile(`(\d+)\s*thousand`),                           // "120 thousand"
}
