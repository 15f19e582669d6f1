package models

import "time"

// Account is the identity record behind a session. It is owned by the
// identity provider; onboarding code only ever re-reads it to pick up
// verification-status changes.
type Account struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Email         string    `bson:"email" json:"email"`
	PasswordHash  string    `bson:"password_hash" json:"-"`
	DisplayName   string    `bson:"display_name" json:"display_name"`
	EmailVerified bool      `bson:"email_verified" json:"email_verified"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
