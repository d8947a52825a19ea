package entity

import (
	"time"

	"github.com/google/uuid"
)

// Action types recorded in the audit trail.
const (
	ActionCompanyRegistered        = "company_registered"
	ActionJobCreated               = "job_created"
	ActionJobUpdated               = "job_updated"
	ActionJobDeleted               = "job_deleted"
	ActionJobStatusChanged         = "job_status_changed"
	ActionApplicationStatusChanged = "application_status_changed"
	ActionApplicationDeleted       = "application_deleted"
	ActionTalentPoolAdded          = "talent_pool_added"
	ActionTalentPoolRemoved        = "talent_pool_removed"
	ActionCVViewed                 = "cv_viewed"
)

const (
	EntityCompany     = "company"
	EntityJob         = "job"
	EntityApplication = "application"
)

// ActivityLog is an immutable audit record. CompanyID is nil for
// platform-level actions, AdminID is nil for system actions.
type ActivityLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   *uuid.UUID `gorm:"type:uuid;index" json:"company_id,omitempty"`
	AdminID     *uuid.UUID `gorm:"type:uuid" json:"admin_id,omitempty"`
	ActionType  string     `gorm:"size:50;not null;index" json:"action_type"`
	EntityType  string     `gorm:"size:50;not null" json:"entity_type"`
	EntityID    *uuid.UUID `gorm:"type:uuid;index" json:"entity_id,omitempty"`
	Description string     `gorm:"type:text" json:"description"`
	Metadata    *string    `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Admin   *Admin   `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}
