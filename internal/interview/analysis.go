package interview

import (
	"encoding/json"
	"strings"
)

// ResponseAnalysis is the structured assessment of one question/answer
// exchange produced by the hosted model.
type ResponseAnalysis struct {
	KeyPoints                []string `json:"key_points"`
	TechnicalSkillsMentioned []string `json:"technical_skills_mentioned"`
	SoftSkillsDemonstrated   []string `json:"soft_skills_demonstrated"`
	ConfidenceLevel          string   `json:"confidence_level"`
	ClarityScore             int      `json:"clarity_score"`
	RelevanceScore           int      `json:"relevance_score"`
}

// NeutralResponseAnalysis is substituted when the model's output cannot be
// parsed. A parse failure never propagates.
func NeutralResponseAnalysis() ResponseAnalysis {
	return ResponseAnalysis{
		KeyPoints:                []string{},
		TechnicalSkillsMentioned: []string{},
		SoftSkillsDemonstrated:   []string{},
		ConfidenceLevel:          "medium",
		ClarityScore:             5,
		RelevanceScore:           5,
	}
}

type SkillScore struct {
	Skill       string `json:"skill"`
	Proficiency int    `json:"proficiency,omitempty"`
	Rating      int    `json:"rating,omitempty"`
}

// FinalAnalysis is the whole-interview assessment.
type FinalAnalysis struct {
	OverallScore        int          `json:"overall_score"`
	TechnicalSkills     []SkillScore `json:"technical_skills"`
	SoftSkills          []SkillScore `json:"soft_skills"`
	CommunicationScore  int          `json:"communication_score"`
	ExperienceMatch     int          `json:"experience_match"`
	CultureFit          int          `json:"culture_fit"`
	Strengths           []string     `json:"strengths"`
	AreasForImprovement []string     `json:"areas_for_improvement"`
	Summary             string       `json:"summary"`
	Recommendation      string       `json:"recommendation"`
}

func NeutralFinalAnalysis() FinalAnalysis {
	return FinalAnalysis{
		OverallScore:        50,
		TechnicalSkills:     []SkillScore{},
		SoftSkills:          []SkillScore{},
		CommunicationScore:  50,
		ExperienceMatch:     50,
		CultureFit:          50,
		Strengths:           []string{},
		AreasForImprovement: []string{},
		Summary:             "Analysis could not be completed",
		Recommendation:      "maybe",
	}
}

// stripFences drops a surrounding markdown code fence if the model added one.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	}
	return strings.TrimSpace(raw)
}

// ParseResponseAnalysis decodes the model output, falling back to the neutral
// default on any malformed payload.
func ParseResponseAnalysis(raw string) ResponseAnalysis {
	var out ResponseAnalysis
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		return NeutralResponseAnalysis()
	}
	return out
}

// ParseFinalAnalysis decodes the model output, falling back to the neutral
// default on any malformed payload.
func ParseFinalAnalysis(raw string) FinalAnalysis {
	var out FinalAnalysis
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		return NeutralFinalAnalysis()
	}
	return out
}
