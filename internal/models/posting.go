package models

type JobType string

const (
	JobTypeFullTime   JobType = "Full_time"
	JobTypePartTime   JobType = "Part_time"
	JobTypeContractor JobType = "Contractor"
	JobTypeFreelance  JobType = "Freelance"
	JobTypeInternship JobType = "Internship"
)

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "Entry"
	ExperienceMid       ExperienceLevel = "Mid"
	ExperienceSenior    ExperienceLevel = "Senior"
	ExperienceExecutive ExperienceLevel = "Executive"
)

// JobPostingDraft is the posting under construction during a conversation.
// Created empty at session start, filled additively by the extractor, and
// discarded or submitted at session end. A set field is only ever overwritten,
// never cleared.
type JobPostingDraft struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Requirements    string          `json:"requirements"`
	JobType         JobType         `json:"jobType"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	SalaryMin       *int            `json:"salaryMin"`
	SalaryMax       *int            `json:"salaryMax"`
	Location        string          `json:"location"`
	RemoteAllowed   bool            `json:"remoteAllowed"`
	SkillsRequired  []string        `json:"skillsRequired"`
	SkillsPreferred []string        `json:"skillsPreferred"`
}
