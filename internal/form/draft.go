package form

import (
	"fmt"

	"proinc-backend/internal/models"
)

// Step indices, in presentation order.
const (
	StepCompany = iota
	StepUser
	StepPayment
	StepDocuments
)

// StepNames in presentation order.
var StepNames = []string{"company", "user", "payment", "documents"}

// Draft is the transient cross-step form state for one onboarding session.
// It lives only in this process and is discarded on successful submit;
// nothing here touches the store until Submit.
type Draft struct {
	// company step
	CompanyName         string `json:"companyName"`
	TIN                 string `json:"tin"`
	Description         string `json:"description"`
	BrelaName           string `json:"brelaName"`
	BusinessLicenceYear string `json:"businessLicenceYear"`
	Location            string `json:"location"`
	Contact             string `json:"contact"`
	CompanyEmail        string `json:"companyEmail"`

	// user step
	FirstName string `json:"firstName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Birthday  string `json:"birthday"`

	// payment step
	PaymentMethod string `json:"paymentMethod"`
	CardNumber    string `json:"cardNumber"`
	Expiry        string `json:"expiry"`
	CVV           string `json:"cvv"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`

	// documents step
	DocType models.DocumentType `json:"docType"`
	Files   []models.FileMeta   `json:"files"`
	// per-file upload progress, 0-100, keyed by file name
	Progress map[string]int `json:"progress"`

	Step int `json:"step"`
}

func newDraft(owner Owner) *Draft {
	return &Draft{
		FirstName:     owner.FirstName,
		Email:         owner.Email,
		PaymentMethod: string(models.PaymentCard),
		Progress:      map[string]int{},
	}
}

// Apply merges a single field into the draft. No validation happens here;
// fields are checked on Advance and Submit.
func (d *Draft) Apply(key, value string) error {
	switch key {
	case "companyName":
		d.CompanyName = value
	case "tin":
		d.TIN = value
	case "description":
		d.Description = value
	case "brelaName":
		d.BrelaName = value
	case "businessLicenceYear":
		d.BusinessLicenceYear = value
	case "location":
		d.Location = value
	case "contact":
		d.Contact = value
	case "companyEmail":
		d.CompanyEmail = value
	case "firstName":
		d.FirstName = value
	case "phone":
		d.Phone = value
	case "email":
		d.Email = value
	case "role":
		d.Role = value
	case "birthday":
		d.Birthday = value
	case "paymentMethod":
		d.PaymentMethod = value
	case "cardNumber":
		d.CardNumber = value
	case "expiry":
		d.Expiry = value
	case "cvv":
		d.CVV = value
	case "bankName":
		d.BankName = value
	case "accountNumber":
		d.AccountNumber = value
	case "docType":
		d.DocType = models.DocumentType(value)
	default:
		return fmt.Errorf("unknown form field %q", key)
	}
	return nil
}

// clone returns a deep-enough copy for handing out snapshots.
func (d *Draft) clone() Draft {
	out := *d
	out.Files = append([]models.FileMeta(nil), d.Files...)
	out.Progress = make(map[string]int, len(d.Progress))
	for k, v := range d.Progress {
		out.Progress[k] = v
	}
	return out
}
