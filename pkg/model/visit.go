package model

import (
	"time"
)

const (
	VisitOpen      = "OPEN"
	VisitClaimed   = "CLAIMED"
	VisitCompleted = "COMPLETED"
	// VisitCancelled is reserved: no operation currently produces it.
	VisitCancelled = "CANCELLED"

	OutcomePass = "PASS"
	OutcomeFail = "FAIL"
)

// CompletedBy is an identity snapshot taken at completion time. It is
// intentionally not a live reference so the review history survives later
// edits to the user record.
type CompletedBy struct {
	UserID      *string `json:"user_id,omitempty" bson:"user_id,omitempty"`
	ExternalID  string  `json:"external_id" bson:"external_id"`
	DisplayName string  `json:"display_name" bson:"display_name"`
}

// Visit is a scheduled home-visit review tied to exactly one pet and one
// applicant. VisitAtUTC is the single source of truth for the visit time;
// the local/timezone fields are display metadata only.
type Visit struct {
	ID          string  `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PetID       string  `json:"pet_id" bson:"pet_id" validate:"required,mongodb"`
	Status      string  `json:"status" bson:"status" validate:"required,oneof=OPEN CLAIMED COMPLETED CANCELLED"`
	Outcome     *string `json:"outcome,omitempty" bson:"outcome,omitempty" validate:"omitempty,oneof=PASS FAIL"`
	CreatedByID *string `json:"created_by_id,omitempty" bson:"created_by_id,omitempty" validate:"omitempty,mongodb"`
	ClaimedByID *string `json:"claimed_by_id,omitempty" bson:"claimed_by_id,omitempty" validate:"omitempty,mongodb"`

	VisitAtUTC      time.Time `json:"visit_at_utc" bson:"visit_at_utc" validate:"required"`
	VisitAtLocal    *string   `json:"visit_at_local,omitempty" bson:"visit_at_local,omitempty"`
	Timezone        *string   `json:"tz,omitempty" bson:"tz,omitempty"`
	TzOffsetMinutes *int      `json:"tz_offset_minutes,omitempty" bson:"tz_offset_minutes,omitempty"`

	StateID       string  `json:"state_id" bson:"state_id" validate:"required,min=1,max=40"`
	PurchaserName string  `json:"purchaser_name" bson:"purchaser_name" validate:"required,min=1,max=100"`
	Phone         string  `json:"phone" bson:"phone" validate:"required,visitphone"`
	LocationNote  *string `json:"location_note,omitempty" bson:"location_note,omitempty" validate:"omitempty,max=500"`

	Comment             *string      `json:"comment,omitempty" bson:"comment,omitempty"`
	BackgroundCheckDone bool         `json:"background_check_done" bson:"background_check_done"`
	CompletedAt         *time.Time   `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CompletedBy         *CompletedBy `json:"completed_by,omitempty" bson:"completed_by,omitempty"`

	// Denormalized pet display mirrors: a read-time cache with no consistency
	// guarantee. PetID stays authoritative.
	PetName    *string `json:"pet_name,omitempty" bson:"pet_name,omitempty"`
	PetSpecies *string `json:"pet_species,omitempty" bson:"pet_species,omitempty"`
	PetBreed   *string `json:"pet_breed,omitempty" bson:"pet_breed,omitempty"`
	PetAge     *string `json:"pet_age,omitempty" bson:"pet_age,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// VisitSchedule is the schedule-visit request payload. The visit time is
// either a local wall-clock value plus timezone context (canonical when
// present) or a direct UTC instant in RFC3339.
type VisitSchedule struct {
	PetID         string  `json:"pet_id" validate:"required,mongodb"`
	StateID       string  `json:"state_id" validate:"required"`
	PurchaserName string  `json:"purchaser_name" validate:"required"`
	Phone         string  `json:"phone" validate:"required,visitphone"`
	LocationNote  *string `json:"location_note,omitempty" validate:"omitempty,max=500"`

	VisitAtLocal    string `json:"visit_at_local,omitempty"`
	Timezone        string `json:"tz,omitempty"`
	TzOffsetMinutes *int   `json:"tz_offset_minutes,omitempty"`
	VisitAtUTC      string `json:"visit_at_utc,omitempty"`
}

// VisitCompletion is the complete-visit request payload. BackgroundCheck is a
// process-compliance gate: it must be explicitly affirmed, not defaulted.
type VisitCompletion struct {
	VisitID         string `json:"visit_id" validate:"required,mongodb"`
	Outcome         string `json:"outcome" validate:"required,oneof=PASS FAIL"`
	Comment         string `json:"comment" validate:"required"`
	BackgroundCheck bool   `json:"background_check"`
}

// VisitCompletionResult reports what the completion reconciled.
type VisitCompletionResult struct {
	VisitID    string `json:"visit_id"`
	Outcome    string `json:"outcome"`
	PetID      string `json:"pet_id"`
	PetUpdated bool   `json:"pet_updated"`
}
