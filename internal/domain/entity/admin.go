package entity

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a recruiter account scoped to a single company.
type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:50;default:'admin'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// SuperAdmin is a platform operator. Not tied to any tenant and
// never created through the public API.
type SuperAdmin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
