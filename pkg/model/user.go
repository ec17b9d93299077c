package model

import (
	"time"
)

const (
	RoleUser     = "USER"
	RoleEmployee = "EMPLOYEE"
	RoleAdmin    = "ADMIN"
)

// User is an identity + role record. ExternalID is the identity-provider id
// and the natural key (unique index). Absence of a record means effective
// role USER unless the external id is on the admin allow-list.
type User struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ExternalID  string    `json:"external_id" bson:"external_id" validate:"required,min=1,max=64"`
	Role        string    `json:"role" bson:"role" validate:"required,oneof=EMPLOYEE ADMIN"`
	Username    *string   `json:"username,omitempty" bson:"username,omitempty" validate:"omitempty,max=100"`
	DisplayName *string   `json:"display_name,omitempty" bson:"display_name,omitempty" validate:"omitempty,max=100"`
	AvatarURL   *string   `json:"avatar_url,omitempty" bson:"avatar_url,omitempty" validate:"omitempty,url"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// EmployeeGrant is the admin payload that upserts a user record with role
// EMPLOYEE under its external identity.
type EmployeeGrant struct {
	ExternalID  string `json:"external_id" validate:"required,min=1,max=64"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
}
