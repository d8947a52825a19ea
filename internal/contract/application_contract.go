package contract

// Upload limits shared by the public submission endpoint and the
// authenticated manual-candidate endpoint.
const (
	MaxUploadSize = 10 << 20 // 10 MiB

	CVFileTypes        = "pdf,doc,docx"
	PortfolioFileTypes = "pdf,zip,rar,7z"
)

type SubmitApplicationRequest struct {
	Name            string `form:"name" validate:"required,min=2,max=255"`
	Email           string `form:"email" validate:"required,email"`
	Phone           string `form:"phone" validate:"max=64"`
	LinkedInURL     string `form:"linkedin_url" validate:"omitempty,url"`
	CurrentPosition string `form:"current_position" validate:"max=255"`
	YearsExperience *int   `form:"years_experience" validate:"omitempty,min=0,max=80"`
	CoverLetter     string `form:"cover_letter"`
}

type ManualCandidateRequest struct {
	JobID           string `form:"job_id" validate:"required,uuid"`
	Name            string `form:"name" validate:"required,min=2,max=255"`
	Email           string `form:"email" validate:"required,email"`
	Phone           string `form:"phone" validate:"max=64"`
	LinkedInURL     string `form:"linkedin_url" validate:"omitempty,url"`
	CurrentPosition string `form:"current_position" validate:"max=255"`
	YearsExperience *int   `form:"years_experience" validate:"omitempty,min=0,max=80"`
	Source          string `form:"source" validate:"max=255"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending cv_viewed shortlisted rejected"`
}

type BulkDeleteRequest struct {
	Status string `json:"status" validate:"required,oneof=pending cv_viewed rejected"`
	JobID  string `json:"job_id" validate:"omitempty,uuid"`
}

type AIShortlistRequest struct {
	Criteria map[string]any `json:"criteria"`
}

type CandidateStatusRequest struct {
	Email string `json:"email" validate:"required,email"`
	JobID string `json:"job_id" validate:"required,uuid"`
}

type CandidateApplicationsRequest struct {
	Email string `json:"email" validate:"required,email"`
}
