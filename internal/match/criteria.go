package match

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Criteria are the per-job shortlisting thresholds recruiters store as
// JSON text on the job row.
type Criteria struct {
	RequiredSkills      []string `json:"required_skills"`
	MinExperience       int      `json:"min_experience"`
	RequiredLanguages   []string `json:"required_languages"`
	MatchJobDescription bool     `json:"match_job_description"`
	JobDescription      string   `json:"job_description,omitempty"`
	JobRequirements     string   `json:"job_requirements,omitempty"`
}

// Empty reports whether no threshold is set at all.
func (c Criteria) Empty() bool {
	return len(c.RequiredSkills) == 0 && c.MinExperience == 0 && len(c.RequiredLanguages) == 0
}

// ParseCriteria decodes stored criteria JSON exactly once at the
// boundary. Rows written by older frontends are sometimes double-encoded
// (a JSON string containing JSON); both forms are accepted here so no
// caller ever has to re-check.
func ParseCriteria(raw string) (Criteria, error) {
	if raw == "" {
		return Criteria{}, nil
	}

	parsed := gjson.Parse(raw)
	if parsed.Type == gjson.String {
		// Double-encoded: unwrap the inner document.
		parsed = gjson.Parse(parsed.String())
	}
	if !parsed.IsObject() {
		return Criteria{}, fmt.Errorf("shortlist criteria is not a JSON object")
	}

	var c Criteria
	if err := json.Unmarshal([]byte(parsed.Raw), &c); err != nil {
		return Criteria{}, fmt.Errorf("decode shortlist criteria: %w", err)
	}
	return c, nil
}
