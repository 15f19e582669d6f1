package models

import "time"

// DeclinedUser is the archived snapshot written at decline time. The live
// users record is updated separately; re-declining overwrites via the same
// key.
type DeclinedUser struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	FirstName   string    `bson:"first_name" json:"first_name"`
	Email       string    `bson:"email" json:"email"`
	Phone       string    `bson:"phone" json:"phone"`
	Role        Role      `bson:"role" json:"role"`
	Description string    `bson:"description" json:"description"`
	DeclinedAt  time.Time `bson:"declined_at" json:"declined_at"`
}
