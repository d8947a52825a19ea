package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ApplicationPending     = "pending"
	ApplicationCVViewed    = "cv_viewed"
	ApplicationShortlisted = "shortlisted"
	ApplicationRejected    = "rejected"
)

// Application is a candidate's submission to a job. CompanyID is
// denormalized from the job at submit time so the row stays reachable
// after the job is deleted.
//
// Score and AnalysisResult are only meaningful once the matcher has run;
// a zero score with a nil AnalysisResult means "not analyzed", not
// "zero match".
type Application struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	JobID             *uuid.UUID `gorm:"type:uuid;index" json:"job_id,omitempty"`
	CompanyID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	FullName          string     `gorm:"size:255;not null" json:"full_name"`
	Email             string     `gorm:"size:255;not null;index" json:"email"`
	Phone             string     `gorm:"size:50" json:"phone"`
	ResumeURL         string     `gorm:"type:text;not null" json:"resume_url"`
	CoverLetter       string     `gorm:"type:text" json:"cover_letter"`
	YearsOfExperience int        `json:"years_of_experience"`
	CurrentPosition   string     `gorm:"size:255" json:"current_position"`
	LinkedinURL       string     `gorm:"size:255" json:"linkedin_url"`
	PortfolioURL      string     `gorm:"size:255" json:"portfolio_url"`
	Status            string     `gorm:"size:50;default:'pending'" json:"status"`
	Score             int        `gorm:"default:0" json:"score"`
	AnalysisResult    *string    `gorm:"type:text" json:"analysis_result,omitempty"`
	ParsedCVText      *string    `gorm:"type:text" json:"parsed_cv_text,omitempty"`
	AppliedAt         time.Time  `json:"applied_at"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy        *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	CVViewedAt        *time.Time `json:"cv_viewed_at,omitempty"`
	CVViewedBy        *uuid.UUID `gorm:"type:uuid" json:"cv_viewed_by,omitempty"`
	LastStatusUpdate  *time.Time `json:"last_status_update,omitempty"`

	// CRM
	ReferralSource    string     `gorm:"size:255" json:"referral_source,omitempty"`
	ReferredByName    string     `gorm:"size:255" json:"referred_by_name,omitempty"`
	ReferredByEmail   string     `gorm:"size:255" json:"referred_by_email,omitempty"`
	ReferredByPhone   string     `gorm:"size:50" json:"referred_by_phone,omitempty"`
	InTalentPool      bool       `gorm:"default:false" json:"in_talent_pool"`
	TalentPoolAddedAt *time.Time `json:"talent_pool_added_at,omitempty"`
	TalentPoolAddedBy *uuid.UUID `gorm:"type:uuid" json:"talent_pool_added_by,omitempty"`

	Job *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

// Analyzed reports whether the matcher has produced a result for this row.
func (a *Application) Analyzed() bool {
	return a.AnalysisResult != nil && *a.AnalysisResult != ""
}
