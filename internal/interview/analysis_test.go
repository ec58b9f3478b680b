package interview

import (
	"reflect"
	"testing"
)

func TestParseResponseAnalysis(t *testing.T) {
	raw := `{"key_points":["led a migration"],"technical_skills_mentioned":["Go"],"soft_skills_demonstrated":["communication"],"confidence_level":"high","clarity_score":8,"relevance_score":9}`

	got := ParseResponseAnalysis(raw)
	want := ResponseAnalysis{
		KeyPoints:                []string{"led a migration"},
		TechnicalSkillsMentioned: []string{"Go"},
		SoftSkillsDemonstrated:   []string{"communication"},
		ConfidenceLevel:          "high",
		ClarityScore:             8,
		RelevanceScore:           9,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseResponseAnalysisStripsCodeFence(t *testing.T) {
	raw := "```json\n{\"confidence_level\":\"low\",\"clarity_score\":3,\"relevance_score\":2}\n```"

	got := ParseResponseAnalysis(raw)
	if got.ConfidenceLevel != "low" || got.ClarityScore != 3 {
		t.Errorf("fenced payload not parsed: %+v", got)
	}
}

func TestParseResponseAnalysisMalformedFallsBackToNeutral(t *testing.T) {
	for _, raw := range []string{"", "not json", "{\"clarity_score\":\"oops\"}"} {
		got := ParseResponseAnalysis(raw)
		if !reflect.DeepEqual(got, NeutralResponseAnalysis()) {
			t.Errorf("raw %q: got %+v, want neutral", raw, got)
		}
	}
}

func TestParseFinalAnalysisMalformedFallsBackToNeutral(t *testing.T) {
	got := ParseFinalAnalysis("garbage")
	want := NeutralFinalAnalysis()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if want.OverallScore != 50 || want.Recommendation != "maybe" {
		t.Errorf("neutral defaults drifted: %+v", want)
	}
}

func TestParseFinalAnalysis(t *testing.T) {
	raw := `{"overall_score":82,"technical_skills":[{"skill":"Go","proficiency":8}],"soft_skills":[],"communication_score":75,"experience_match":70,"culture_fit":80,"strengths":["clear answers"],"areas_for_improvement":["more detail"],"summary":"Strong candidate","recommendation":"yes"}`

	got := ParseFinalAnalysis(raw)
	if got.OverallScore != 82 || got.Recommendation != "yes" {
		t.Errorf("got %+v", got)
	}
	if len(got.TechnicalSkills) != 1 || got.TechnicalSkills[0].Skill != "Go" {
		t.Errorf("technical skills = %+v", got.TechnicalSkills)
	}
}
