package contract

import "time"

type AddNoteRequest struct {
	Content   string `json:"content" validate:"required,min=1,max=5000"`
	IsPrivate bool   `json:"is_private"`
}

type UpdateNoteRequest struct {
	Content   string `json:"content" validate:"required,min=1,max=5000"`
	IsPrivate *bool  `json:"is_private"`
}

type ReferralRequest struct {
	ReferredBy   string `json:"referred_by" validate:"required,min=2,max=255"`
	ReferralNote string `json:"referral_note" validate:"max=2000"`
}

// TimelineEvent is a single entry of the merged candidate timeline:
// status changes, notes and talent-pool moves sorted newest first.
type TimelineEvent struct {
	Type      string    `json:"type"`
	Detail    string    `json:"detail"`
	ActorName string    `json:"actor_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
