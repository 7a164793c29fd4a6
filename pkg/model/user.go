package model

import (
	"time"

	"github.com/google/uuid"
)

type Plan string

const (
	PlanFree        Plan = "free"
	PlanMonthly     Plan = "monthly"
	PlanCreditBased Plan = "credit-based"
)

// UserProfile is keyed by the identity provider's user id.
type UserProfile struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Email           string    `json:"email" db:"email"`
	Name            *string   `json:"name,omitempty" db:"name"`
	Plan            Plan      `json:"plan" db:"plan"`
	Credits         int       `json:"credits" db:"credits"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty" db:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
