package models

import "time"

// Company is the company-step payload, keyed by account id. The onboarding
// machine writes it and never reads it back.
type Company struct {
	ID                  string    `bson:"_id,omitempty" json:"id"`
	CompanyName         string    `bson:"company_name" json:"company_name"`
	TIN                 string    `bson:"tin" json:"tin"`
	Description         string    `bson:"description" json:"description"`
	BrelaName           string    `bson:"brela_name" json:"brela_name"`
	BusinessLicenceYear string    `bson:"business_licence_year" json:"business_licence_year"`
	Location            string    `bson:"location" json:"location"`
	Contact             string    `bson:"contact" json:"contact"`
	CompanyEmail        string    `bson:"company_email" json:"company_email"`
	UpdatedAt           time.Time `bson:"updated_at" json:"updated_at"`
}
