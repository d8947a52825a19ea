package match

import (
	"strings"
	"testing"
)

const sampleCV = `
John Doe
Senior Backend Developer

7 years of experience building distributed systems.
Skills: Go, Python, PostgreSQL, Docker, Kubernetes, AWS
Languages: fluent in English, native German speaker.
Bachelor degree in Computer Science. AWS certified.
`

func TestExtractExperience(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{"explicit years", "I have 7 years of experience in Go", 7},
		{"plus suffix", "10+ years experience with databases", 10},
		{"yoe shorthand", "5 yoe as an SRE", 5},
		{"takes the highest", "3 years experience in Go, 8 years of experience overall", 8},
		{"year span fallback", "Acme Corp 2015 - Present (2023)", 8},
		{"nothing stated", "passionate junior developer", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractExperience(tc.text); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestExtractSkillsSynonymsAndCompounds(t *testing.T) {
	cv := "Built SPAs with React and services in Golang. CI with K8s."

	required := []string{"React.js", "Go", "Kubernetes"}
	found := ExtractSkills(cv, required)

	for _, skill := range required {
		if !containsFold(found, skill) {
			t.Fatalf("expected %q to be matched, found %v", skill, found)
		}
	}
}

func TestExtractSkillsMissing(t *testing.T) {
	found := ExtractSkills("I write COBOL on mainframes", []string{"Rust"})
	if containsFold(found, "Rust") {
		t.Fatalf("Rust should not match, found %v", found)
	}
}

func TestExtractLanguages(t *testing.T) {
	found := ExtractLanguages(sampleCV, []string{"English", "German", "French"})
	if len(found) != 2 || !containsFold(found, "English") || !containsFold(found, "German") {
		t.Fatalf("expected English and German, got %v", found)
	}
}

func TestAnalyzeFullMatch(t *testing.T) {
	criteria := Criteria{
		RequiredSkills:    []string{"Go", "Docker"},
		MinExperience:     5,
		RequiredLanguages: []string{"English"},
	}

	result := Analyze(sampleCV, criteria)

	if result.SkillsMatch != 100 {
		t.Fatalf("skills match = %d, want 100", result.SkillsMatch)
	}
	if result.ExperienceMatch != 100 {
		t.Fatalf("experience match = %d, want 100", result.ExperienceMatch)
	}
	if result.LanguageMatch != 100 {
		t.Fatalf("language match = %d, want 100", result.LanguageMatch)
	}
	if result.MatchScore != 100 {
		t.Fatalf("match score = %d, want 100", result.MatchScore)
	}
	if len(result.MissingSkills) != 0 {
		t.Fatalf("unexpected missing skills %v", result.MissingSkills)
	}
	if !strings.Contains(result.Summary, "7 years experience") {
		t.Fatalf("summary should mention experience, got %q", result.Summary)
	}
}

func TestAnalyzePartialExperience(t *testing.T) {
	criteria := Criteria{MinExperience: 10}
	result := Analyze("4 years of experience in support roles", criteria)

	if result.ExperienceMatch != 40 {
		t.Fatalf("experience match = %d, want 40", result.ExperienceMatch)
	}
	// Skills and languages unset: both count as full.
	want := (100*weightSkills + 40*weightExperience + 100*weightLanguages + 100*weightDescription) / 100
	if result.MatchScore != want {
		t.Fatalf("match score = %d, want %d", result.MatchScore, want)
	}
}

func TestAnalyzeEmptyCriteriaScoresFull(t *testing.T) {
	result := Analyze(sampleCV, Criteria{})
	if result.MatchScore != 100 {
		t.Fatalf("no thresholds should mean a full score, got %d", result.MatchScore)
	}
}

func TestAnalyzeMissingSkillsListed(t *testing.T) {
	criteria := Criteria{RequiredSkills: []string{"Go", "Erlang"}}
	result := Analyze(sampleCV, criteria)

	if result.SkillsMatch != 50 {
		t.Fatalf("skills match = %d, want 50", result.SkillsMatch)
	}
	if len(result.MissingSkills) != 1 || result.MissingSkills[0] != "Erlang" {
		t.Fatalf("missing skills = %v, want [Erlang]", result.MissingSkills)
	}
}

func TestParseCriteriaPlainObject(t *testing.T) {
	raw := `{"required_skills":["Go"],"min_experience":3,"required_languages":["English"]}`

	criteria, err := ParseCriteria(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(criteria.RequiredSkills) != 1 || criteria.MinExperience != 3 {
		t.Fatalf("unexpected criteria %+v", criteria)
	}
}

func TestParseCriteriaDoubleEncoded(t *testing.T) {
	// Older rows store the criteria as a JSON string containing JSON.
	raw := `"{\"required_skills\":[\"Go\",\"Docker\"],\"min_experience\":2}"`

	criteria, err := ParseCriteria(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(criteria.RequiredSkills) != 2 || criteria.MinExperience != 2 {
		t.Fatalf("double-encoded criteria not unwrapped: %+v", criteria)
	}
}

func TestParseCriteriaRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`[1,2,3]`, `"just a string"`, `42`} {
		if _, err := ParseCriteria(raw); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}

func TestParseCriteriaEmptyIsEmpty(t *testing.T) {
	criteria, err := ParseCriteria("")
	if err != nil {
		t.Fatal(err)
	}
	if !criteria.Empty() {
		t.Fatalf("expected empty criteria, got %+v", criteria)
	}
}
