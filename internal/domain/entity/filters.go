package entity

// ApplicationFilter narrows a tenant's application listing. Zero values
// mean "no constraint". Dates are YYYY-MM-DD and compare by calendar day.
type ApplicationFilter struct {
	JobID    string
	Status   string
	DateFrom string
	DateTo   string
}

// ActivityLogFilter narrows an audit-trail listing.
type ActivityLogFilter struct {
	CompanyID  string
	ActionType string
	EntityType string
	DateFrom   string
	DateTo     string
}

// CandidateSearchFilter is the structured part of a candidate search;
// free-text and skill matching happen against extracted CV text after
// these constraints run in SQL.
type CandidateSearchFilter struct {
	MinExperience   *int
	MaxExperience   *int
	CurrentPosition string
	Status          string
	HasPortfolio    bool
	HasLinkedIn     bool
}
