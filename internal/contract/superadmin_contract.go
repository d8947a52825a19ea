package contract

type PlatformStats struct {
	TotalCompanies     int64 `json:"total_companies"`
	ActiveCompanies    int64 `json:"active_companies"`
	TrialCompanies     int64 `json:"trial_companies"`
	TotalJobs          int64 `json:"total_jobs"`
	OpenJobs           int64 `json:"open_jobs"`
	TotalApplications  int64 `json:"total_applications"`
	TotalAdmins        int64 `json:"total_admins"`
	ShortlistedOverall int64 `json:"shortlisted_overall"`
}

type CompanyOverview struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	SubscriptionStatus string `json:"subscription_status"`
	SubscriptionTier   string `json:"subscription_tier"`
	EmbeddedMode       bool   `json:"embedded_mode"`
	JobCount           int64  `json:"job_count"`
	ApplicationCount   int64  `json:"application_count"`
	CreatedAt          string `json:"created_at"`
}

type UpdateSubscriptionRequest struct {
	SubscriptionStatus *string `json:"subscription_status" validate:"omitempty,oneof=trial active suspended cancelled"`
	SubscriptionTier   *string `json:"subscription_tier" validate:"omitempty,oneof=starter growth enterprise"`
}
