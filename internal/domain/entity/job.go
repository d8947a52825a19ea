package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	JobStatusOpen     = "open"
	JobStatusClosed   = "closed"
	JobStatusArchived = "archived"
)

// DateOnly is a date without a time component, serialized as YYYY-MM-DD
// both over the wire and in the database. Job deadlines compare by
// calendar day, never by clock time.
type DateOnly struct {
	time.Time
}

func NewDateOnly(t time.Time) DateOnly {
	return DateOnly{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return NewDateOnly(t), nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDateOnly(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateOnly) Value() (driver.Value, error) {
	return d.Format("2006-01-02"), nil
}

func (d *DateOnly) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		*d = NewDateOnly(v)
		return nil
	case string:
		parsed, err := ParseDateOnly(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", value)
	}
}

// Expired reports whether the deadline day lies strictly before today (UTC).
func (d DateOnly) Expired(now time.Time) bool {
	return d.Format("2006-01-02") < now.UTC().Format("2006-01-02")
}

// Job is a posted opening. ShortlistCriteria holds the raw JSON text the
// recruiter saved; match.ParseCriteria is the only place that reads it.
type Job struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID         uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Title             string    `gorm:"size:255;not null" json:"title"`
	Description       string    `gorm:"type:text;not null" json:"description"`
	Requirements      string    `gorm:"type:text" json:"requirements"`
	Location          string    `gorm:"size:255" json:"location"`
	JobType           string    `gorm:"size:50" json:"job_type"`
	SalaryRange       string    `gorm:"size:100" json:"salary_range"`
	Deadline          DateOnly  `gorm:"type:date;not null" json:"deadline"`
	Status            string    `gorm:"size:50;default:'open'" json:"status"`
	AutoShortlist     bool      `gorm:"default:true" json:"auto_shortlist"`
	ShortlistCriteria *string   `gorm:"type:text" json:"shortlist_criteria,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Applications []Application `gorm:"foreignKey:JobID" json:"applications,omitempty"`
}
