package entity

import (
	"time"

	"github.com/google/uuid"
)

// CandidateNote is a recruiter annotation on an application. Private
// notes are visible only to the admin who wrote them.
type CandidateNote struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`
	AdminID       uuid.UUID `gorm:"type:uuid;not null" json:"admin_id"`
	Note          string    `gorm:"type:text;not null" json:"note"`
	IsPrivate     bool      `gorm:"default:false" json:"is_private"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Admin Admin `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

// VisibleTo reports whether the actor may read this note.
func (n *CandidateNote) VisibleTo(adminID uuid.UUID) bool {
	return !n.IsPrivate || n.AdminID == adminID
}
