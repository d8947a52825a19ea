package match

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Scoring weights, in percent. Skills dominate, description-word overlap
// is a tiebreaker.
const (
	weightSkills      = 40
	weightExperience  = 30
	weightLanguages   = 20
	weightDescription = 10
)

// Result is the full analysis stored on an application. It serializes
// into the analysis_result blob the dashboard renders in badges and
// tooltips.
type Result struct {
	MatchScore      int      `json:"match_score"`
	Skills          []string `json:"skills"`
	Experience      int      `json:"experience"`
	Languages       []string `json:"languages"`
	Summary         string   `json:"summary"`
	MatchReason     string   `json:"match_reason"`
	MissingSkills   []string `json:"missing_skills"`
	Strengths       []string `json:"strengths"`
	SkillsMatch     int      `json:"skills_match"`
	ExperienceMatch int      `json:"experience_match"`
	LanguageMatch   int      `json:"language_match"`
}

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*\+?\s*years?\s*(?:of\s*)?experience`),
	regexp.MustCompile(`experience[:\s]+(\d+)\s*years?`),
	regexp.MustCompile(`(\d+)\s*years?\s*experience`),
	regexp.MustCompile(`(\d+)\s*y\.?o\.?e\.?`),
}

var yearPattern = regexp.MustCompile(`(?:19|20)\d{2}`)

// ExtractExperience finds the highest explicitly stated years-of-
// experience figure, falling back to the span of employment years
// mentioned anywhere in the text.
func ExtractExperience(cvText string) int {
	cvLower := strings.ToLower(cvText)

	maxYears := 0
	for _, pattern := range experiencePatterns {
		for _, m := range pattern.FindAllStringSubmatch(cvLower, -1) {
			if len(m) > 1 {
				if years, err := strconv.Atoi(m[1]); err == nil && years > maxYears {
					maxYears = years
				}
			}
		}
	}

	if maxYears == 0 {
		dates := yearPattern.FindAllString(cvText, -1)
		if len(dates) >= 2 {
			start, _ := strconv.Atoi(dates[0])
			end, _ := strconv.Atoi(dates[len(dates)-1])
			if end > start {
				maxYears = end - start
			}
		}
	}

	return maxYears
}

// ExtractSkills returns the required skills evidenced in the CV, plus
// common skills worth surfacing even when not required. Matching runs
// through direct containment, word boundaries, the synonym table, the
// first word of compound skills, and title-based inference.
func ExtractSkills(cvText string, requiredSkills []string) []string {
	var found []string
	cvLower := strings.ToLower(cvText)
	inferred := inferSkillsFromTitle(extractJobTitle(cvText))

	for _, skill := range requiredSkills {
		if skillPresent(cvLower, skill, inferred) {
			found = append(found, skill)
		}
	}

	for _, skill := range commonSkills {
		if !containsFold(found, skill) && strings.Contains(cvLower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}

	return found
}

func skillPresent(cvLower, skill string, inferred []string) bool {
	normalized := normalizeSkill(skill)
	if normalized == "" {
		return false
	}

	if strings.Contains(cvLower, normalized) {
		return true
	}
	if regexp.MustCompile(`\b` + regexp.QuoteMeta(normalized) + `\b`).MatchString(cvLower) {
		return true
	}

	for _, synonym := range synonymsFor(skill) {
		if strings.Contains(cvLower, normalizeSkill(synonym)) {
			return true
		}
	}

	// Compound skills match on their head word: "React.js" counts when
	// the CV only says "React".
	if words := strings.Fields(normalized); len(words) > 0 {
		if first := words[0]; len(first) > 3 && strings.Contains(cvLower, first) {
			return true
		}
	}

	for _, inf := range inferred {
		infLower := strings.ToLower(inf)
		if strings.Contains(infLower, normalized) || strings.Contains(normalized, infLower) {
			return true
		}
	}

	return false
}

// ExtractLanguages returns the required spoken languages the CV shows
// evidence of.
func ExtractLanguages(cvText string, requiredLanguages []string) []string {
	var found []string
	cvLower := strings.ToLower(cvText)

	for _, lang := range requiredLanguages {
		langLower := strings.ToLower(lang)
		patterns, known := languagePatterns[langLower]
		if !known {
			patterns = []string{langLower}
		}
		for _, p := range patterns {
			if strings.Contains(cvLower, p) {
				found = append(found, lang)
				break
			}
		}
	}

	return found
}

var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:position|role|title|job)[:\s]+([a-z\s]+(?:developer|engineer|manager|analyst|designer|lead|architect))`),
	regexp.MustCompile(`(?i)([a-z\s]+(?:developer|engineer|manager|analyst|designer|lead|architect))`),
}

func extractJobTitle(cvText string) string {
	cvLower := strings.ToLower(cvText)
	for _, pattern := range titlePatterns {
		if m := pattern.FindStringSubmatch(cvLower); len(m) > 1 {
			title := strings.TrimSpace(m[1])
			if len(title) > 3 && len(title) < 50 {
				return title
			}
		}
	}
	return ""
}

// Analyze scores a CV against the criteria.
func Analyze(cvText string, criteria Criteria) *Result {
	result := &Result{
		Skills:    []string{},
		Languages: []string{},
		Strengths: []string{},
	}
	cvLower := strings.ToLower(cvText)

	if len(criteria.RequiredSkills) > 0 {
		result.Skills = ExtractSkills(cvText, criteria.RequiredSkills)
		matched := 0
		for _, skill := range criteria.RequiredSkills {
			if containsFold(result.Skills, skill) {
				matched++
			} else {
				result.MissingSkills = append(result.MissingSkills, skill)
			}
		}
		result.SkillsMatch = clampPercent(matched * 100 / len(criteria.RequiredSkills))
	} else {
		result.Skills = ExtractSkills(cvText, nil)
		result.SkillsMatch = 100
	}

	result.Experience = ExtractExperience(cvText)
	switch {
	case criteria.MinExperience <= 0:
		result.ExperienceMatch = 100
	case result.Experience >= criteria.MinExperience:
		result.ExperienceMatch = 100
	case result.Experience > 0:
		result.ExperienceMatch = result.Experience * 100 / criteria.MinExperience
	default:
		result.ExperienceMatch = 0
	}

	if len(criteria.RequiredLanguages) > 0 {
		result.Languages = ExtractLanguages(cvText, criteria.RequiredLanguages)
		result.LanguageMatch = clampPercent(len(result.Languages) * 100 / len(criteria.RequiredLanguages))
	} else {
		result.LanguageMatch = 100
	}

	descMatch := 100
	if criteria.MatchJobDescription && criteria.JobDescription != "" {
		descMatch = descriptionOverlap(cvLower, criteria.JobDescription)
	}

	result.MatchScore = (result.SkillsMatch*weightSkills +
		result.ExperienceMatch*weightExperience +
		result.LanguageMatch*weightLanguages +
		descMatch*weightDescription) / 100

	result.Summary = buildSummary(result, criteria)
	result.MatchReason = buildMatchReason(result, criteria)
	result.Strengths = identifyStrengths(result, cvLower)

	return result
}

// AnalyzeURL downloads the CV and scores it.
func AnalyzeURL(ctx context.Context, cvURL string, criteria Criteria) (*Result, error) {
	cvText, err := ExtractTextFromURL(ctx, cvURL)
	if err != nil {
		return nil, fmt.Errorf("extract CV text: %w", err)
	}
	if len(cvText) < 50 {
		return nil, fmt.Errorf("CV text too short or unreadable")
	}
	return Analyze(cvText, criteria), nil
}

func descriptionOverlap(cvLower, description string) int {
	words := strings.Fields(strings.ToLower(description))
	if len(words) == 0 {
		return 100
	}

	matched := 0
	for _, word := range words {
		if len(word) > 4 && strings.Contains(cvLower, word) {
			matched++
		}
	}
	return clampPercent(matched * 100 / len(words))
}

func buildSummary(result *Result, criteria Criteria) string {
	var parts []string
	if result.Experience > 0 {
		parts = append(parts, fmt.Sprintf("%d years experience", result.Experience))
	}
	if len(criteria.RequiredSkills) > 0 {
		matched := len(criteria.RequiredSkills) - len(result.MissingSkills)
		parts = append(parts, fmt.Sprintf("%d/%d required skills", matched, len(criteria.RequiredSkills)))
	}
	if len(result.Languages) > 0 {
		parts = append(parts, fmt.Sprintf("%d languages", len(result.Languages)))
	}

	if len(parts) == 0 {
		return "Candidate profile analyzed"
	}
	return strings.Join(parts, ", ")
}

func buildMatchReason(result *Result, criteria Criteria) string {
	var reasons []string

	switch {
	case result.SkillsMatch >= 80:
		reasons = append(reasons, "Strong skills match")
	case result.SkillsMatch >= 50:
		reasons = append(reasons, "Partial skills match")
	case len(criteria.RequiredSkills) > 0:
		reasons = append(reasons, "Missing key skills")
	}

	if result.ExperienceMatch >= 100 {
		reasons = append(reasons, "Meets experience requirement")
	} else if result.ExperienceMatch > 0 {
		reasons = append(reasons, "Below experience requirement")
	}

	if result.LanguageMatch >= 100 {
		reasons = append(reasons, "Meets language requirements")
	} else if len(criteria.RequiredLanguages) > 0 {
		reasons = append(reasons, "Missing language requirements")
	}

	if len(reasons) == 0 {
		return "Basic profile match"
	}
	return strings.Join(reasons, ". ")
}

func identifyStrengths(result *Result, cvLower string) []string {
	strengths := []string{}

	if result.Experience >= 5 {
		strengths = append(strengths, "Extensive experience")
	}
	if len(result.Skills) >= 5 {
		strengths = append(strengths, "Diverse skill set")
	}
	if result.SkillsMatch >= 80 {
		strengths = append(strengths, "Strong technical match")
	}
	if strings.Contains(cvLower, "degree") || strings.Contains(cvLower, "bachelor") || strings.Contains(cvLower, "master") {
		strengths = append(strengths, "Educational background")
	}
	if strings.Contains(cvLower, "certification") || strings.Contains(cvLower, "certified") {
		strengths = append(strengths, "Professional certifications")
	}

	return strengths
}

func clampPercent(n int) int {
	if n > 100 {
		return 100
	}
	if n < 0 {
		return 0
	}
	return n
}

func containsFold(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
