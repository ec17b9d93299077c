package model

import (
	"time"
)

const (
	PetAvailable = "AVAILABLE"
	PetReserved  = "RESERVED"
	PetAdopted   = "ADOPTED"
)

// Pet is an adoptable animal record. Status and ActiveVisitID move together:
// RESERVED and ADOPTED always carry the visit holding the reservation, and
// only the visit lifecycle transitions may change them.
type Pet struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name          string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Species       string    `json:"species" bson:"species" validate:"required,min=1,max=60"`
	Breed         *string   `json:"breed,omitempty" bson:"breed,omitempty" validate:"omitempty,max=60"`
	Age           *string   `json:"age,omitempty" bson:"age,omitempty" validate:"omitempty,max=30"`
	Notes         *string   `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=2000"`
	PhotoURL      *string   `json:"photo_url,omitempty" bson:"photo_url,omitempty" validate:"omitempty,url"`
	Status        string    `json:"status" bson:"status" validate:"required,oneof=AVAILABLE RESERVED ADOPTED"`
	ActiveVisitID *string   `json:"active_visit_id,omitempty" bson:"active_visit_id,omitempty" validate:"omitempty,mongodb"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// PetCreate is the admin catalog-add payload. Status is never accepted from
// the client; new pets always enter the pool AVAILABLE with no active visit.
type PetCreate struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	Species  string  `json:"species" validate:"required,min=1,max=60"`
	Breed    *string `json:"breed,omitempty" validate:"omitempty,max=60"`
	Age      *string `json:"age,omitempty" validate:"omitempty,max=30"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	PhotoURL *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}
