package form

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"proinc-backend/internal/models"
)

// Minimum field lengths. These are the floor the steps validate against;
// tighten per deployment if needed.
const (
	minNameLen       = 2
	minIdentifierLen = 5
	minFreeTextLen   = 10
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidationError lists the fields that blocked an Advance or Submit, keyed
// by field name with a human-readable reason.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

type fieldErrors map[string]string

func (fe fieldErrors) requireName(key, value string) {
	if len(strings.TrimSpace(value)) < minNameLen {
		fe[key] = fmt.Sprintf("must be at least %d characters", minNameLen)
	}
}

func (fe fieldErrors) requireIdentifier(key, value string) {
	if len(strings.TrimSpace(value)) < minIdentifierLen {
		fe[key] = fmt.Sprintf("must be at least %d characters", minIdentifierLen)
	}
}

func (fe fieldErrors) requireText(key, value string) {
	if len(strings.TrimSpace(value)) < minFreeTextLen {
		fe[key] = fmt.Sprintf("must be at least %d characters", minFreeTextLen)
	}
}

func (fe fieldErrors) requireEmail(key, value string) {
	if !emailRx.MatchString(strings.TrimSpace(value)) {
		fe[key] = "must be a valid email address"
	}
}

func (fe fieldErrors) require(key, value string) {
	if strings.TrimSpace(value) == "" {
		fe[key] = "is required"
	}
}

// validateStep checks the required fields of one step. Returns nil when the
// step passes.
func validateStep(d *Draft, step int) *ValidationError {
	fe := fieldErrors{}

	switch step {
	case StepCompany:
		fe.requireName("companyName", d.CompanyName)
		fe.requireIdentifier("tin", d.TIN)
		fe.requireText("description", d.Description)
		fe.requireName("brelaName", d.BrelaName)
		fe.require("businessLicenceYear", d.BusinessLicenceYear)
		fe.requireName("location", d.Location)
		fe.require("contact", d.Contact)
		fe.requireEmail("companyEmail", d.CompanyEmail)

	case StepUser:
		fe.requireName("firstName", d.FirstName)
		fe.require("phone", d.Phone)
		fe.requireEmail("email", d.Email)
		fe.require("birthday", d.Birthday)
		if !selectableRole(d.Role) {
			fe["role"] = "must be one of the offered roles"
		}

	case StepPayment:
		switch models.PaymentMethod(d.PaymentMethod) {
		case models.PaymentCard:
			fe.requireIdentifier("cardNumber", d.CardNumber)
			fe.require("expiry", d.Expiry)
			if l := len(strings.TrimSpace(d.CVV)); l < 3 || l > 4 {
				fe["cvv"] = "must be 3 or 4 digits"
			}
		case models.PaymentBank:
			fe.requireName("bankName", d.BankName)
			fe.requireIdentifier("accountNumber", d.AccountNumber)
		case models.PaymentCash:
			// nothing to collect; payment happens on delivery
		default:
			fe["paymentMethod"] = "must be card, bank or cash"
		}

	case StepDocuments:
		// uploads are optional; policy is enforced at selection time
	}

	if len(fe) > 0 {
		return &ValidationError{Fields: fe}
	}
	return nil
}

func selectableRole(role string) bool {
	for _, r := range models.SelectableRoles {
		if string(r) == role {
			return true
		}
	}
	return false
}
