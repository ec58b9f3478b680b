package models

// JobContext carries the posting an interview is conducted for. It arrives in
// the room bootstrap payload.
type JobContext struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	SkillsRequired []string `json:"skillsRequired"`
}

// Resume carries the candidate data an interview is personalized with.
type Resume struct {
	Name       string   `json:"name"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
}

// TitleOrDefault returns the job title with the generic fallback used in
// prompt templates.
func (j JobContext) TitleOrDefault() string {
	if j.Title == "" {
		return "this position"
	}
	return j.Title
}

func (j JobContext) CompanyOrDefault() string {
	if j.Company == "" {
		return "our company"
	}
	return j.Company
}

func (r Resume) NameOrDefault() string {
	if r.Name == "" {
		return "the candidate"
	}
	return r.Name
}
