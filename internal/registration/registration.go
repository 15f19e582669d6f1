// Package registration performs the multi-record registration write:
// companies, users, payments, documents, in that order, one merge per
// collection. The store has no cross-document transaction, so a failure
// partway through leaves the earlier records in place; the whole operation
// is reported as failed and no compensation is attempted.
package registration

import (
	"context"
	"fmt"

	"proinc-backend/internal/form"
	"proinc-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type CompanyStore interface {
	Merge(ctx context.Context, id string, company *models.Company) error
}

type UserStore interface {
	Merge(ctx context.Context, id string, fields bson.M) error
}

type PaymentStore interface {
	Merge(ctx context.Context, id string, payment *models.Payment) error
}

type DocumentStore interface {
	Merge(ctx context.Context, id string, document *models.Document) error
}

type Service struct {
	companies CompanyStore
	users     UserStore
	payments  PaymentStore
	documents DocumentStore
}

func NewService(companies CompanyStore, users UserStore, payments PaymentStore, documents DocumentStore) *Service {
	return &Service{
		companies: companies,
		users:     users,
		payments:  payments,
		documents: documents,
	}
}

// Register commits the draft. All four records share the account id as key.
// The user record comes out unapproved with profile_completed set, which is
// what moves the onboarding gate to awaiting-approval.
func (s *Service) Register(ctx context.Context, userID string, d *form.Draft) error {
	company := &models.Company{
		CompanyName:         d.CompanyName,
		TIN:                 d.TIN,
		Description:         d.Description,
		BrelaName:           d.BrelaName,
		BusinessLicenceYear: d.BusinessLicenceYear,
		Location:            d.Location,
		Contact:             d.Contact,
		CompanyEmail:        d.CompanyEmail,
	}
	if err := s.companies.Merge(ctx, userID, company); err != nil {
		return fmt.Errorf("registration: company record: %w", err)
	}

	userFields := bson.M{
		"first_name":        d.FirstName,
		"email":             d.Email,
		"phone":             d.Phone,
		"role":              models.Role(d.Role),
		"birthday":          d.Birthday,
		"is_approved":       false,
		"is_declined":       false,
		"profile_completed": true,
	}
	if err := s.users.Merge(ctx, userID, userFields); err != nil {
		return fmt.Errorf("registration: user record: %w", err)
	}

	payment := &models.Payment{
		PaymentMethod: models.PaymentMethod(d.PaymentMethod),
		CardLast4:     last4(d.CardNumber),
		BankName:      d.BankName,
		AccountNumber: d.AccountNumber,
	}
	if err := s.payments.Merge(ctx, userID, payment); err != nil {
		return fmt.Errorf("registration: payment record: %w", err)
	}

	document := &models.Document{
		Uploaded: len(d.Files) > 0,
		Files:    append([]models.FileMeta(nil), d.Files...),
	}
	if err := s.documents.Merge(ctx, userID, document); err != nil {
		return fmt.Errorf("registration: document record: %w", err)
	}

	return nil
}

// last4 truncates a card number before anything is persisted. Full numbers
// never reach the store.
func last4(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}
