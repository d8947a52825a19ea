package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubscriptionTrial  = "trial"
	SubscriptionActive = "active"

	TierStarter = "starter"
)

// Company is a tenant. Every admin, job and application hangs off one.
type Company struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyName        string    `gorm:"size:255;not null" json:"company_name"`
	Email              string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	CompanyWebsite     string    `gorm:"size:255" json:"company_website"`
	EmbeddedMode       bool      `gorm:"default:false" json:"embedded_mode"`
	EmbedDomain        *string   `gorm:"size:255" json:"embed_domain,omitempty"`
	SubscriptionStatus string    `gorm:"size:50;default:'trial'" json:"subscription_status"`
	SubscriptionTier   string    `gorm:"size:50;default:'starter'" json:"subscription_tier"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
