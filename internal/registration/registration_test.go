package registration

import (
	"context"
	"errors"
	"testing"

	"proinc-backend/internal/form"
	"proinc-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type captures struct {
	companyID  string
	company    *models.Company
	companyErr error

	userID   string
	userDoc  bson.M
	userErr  error
	payID    string
	payment  *models.Payment
	payErr   error
	docID    string
	document *models.Document
	docErr   error
}

func (c *captures) companyStore() CompanyStore { return companyFn{c} }
func (c *captures) userStore() UserStore       { return userFn{c} }
func (c *captures) paymentStore() PaymentStore { return paymentFn{c} }
func (c *captures) docStore() DocumentStore    { return docFn{c} }

type companyFn struct{ c *captures }
type userFn struct{ c *captures }
type paymentFn struct{ c *captures }
type docFn struct{ c *captures }

func (f companyFn) Merge(ctx context.Context, id string, company *models.Company) error {
	f.c.companyID, f.c.company = id, company
	return f.c.companyErr
}

func (f userFn) Merge(ctx context.Context, id string, fields bson.M) error {
	f.c.userID, f.c.userDoc = id, fields
	return f.c.userErr
}

func (f paymentFn) Merge(ctx context.Context, id string, payment *models.Payment) error {
	f.c.payID, f.c.payment = id, payment
	return f.c.payErr
}

func (f docFn) Merge(ctx context.Context, id string, document *models.Document) error {
	f.c.docID, f.c.document = id, document
	return f.c.docErr
}

func sampleDraft() *form.Draft {
	return &form.Draft{
		CompanyName:   "Acme Ltd",
		TIN:           "123-456-789",
		Description:   "We build everything under the sun",
		CompanyEmail:  "info@acme.example",
		FirstName:     "Alice",
		Phone:         "0700000000",
		Email:         "alice@x.com",
		Role:          "supplier",
		Birthday:      "1990-04-01",
		PaymentMethod: "card",
		CardNumber:    "4111111111111111",
		Files: []models.FileMeta{
			{Name: "license.pdf", ContentType: "application/pdf", SizeBytes: 1024, DocType: models.DocLicense},
		},
	}
}

func TestRegisterWritesAllFourRecords(t *testing.T) {
	t.Parallel()

	caps := &captures{}
	svc := NewService(caps.companyStore(), caps.userStore(), caps.paymentStore(), caps.docStore())

	err := svc.Register(context.Background(), "u1", sampleDraft())
	require.NoError(t, err)

	// one record in each collection, all under the same identity id
	assert.Equal(t, "u1", caps.companyID)
	assert.Equal(t, "u1", caps.userID)
	assert.Equal(t, "u1", caps.payID)
	assert.Equal(t, "u1", caps.docID)

	assert.Equal(t, "Acme Ltd", caps.company.CompanyName)

	assert.Equal(t, false, caps.userDoc["is_approved"])
	assert.Equal(t, false, caps.userDoc["is_declined"])
	assert.Equal(t, true, caps.userDoc["profile_completed"])
	assert.Equal(t, models.Role("supplier"), caps.userDoc["role"])

	// card number is truncated before persistence
	assert.Equal(t, "1111", caps.payment.CardLast4)

	assert.True(t, caps.document.Uploaded)
	require.Len(t, caps.document.Files, 1)
	assert.Equal(t, "license.pdf", caps.document.Files[0].Name)
}

func TestRegisterPartialFailure(t *testing.T) {
	t.Parallel()

	caps := &captures{payErr: errors.New("write rejected")}
	svc := NewService(caps.companyStore(), caps.userStore(), caps.paymentStore(), caps.docStore())

	err := svc.Register(context.Background(), "u1", sampleDraft())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment record")

	// earlier writes went through and are not rolled back
	assert.Equal(t, "u1", caps.companyID)
	assert.Equal(t, "u1", caps.userID)
	// the later write never happened
	assert.Empty(t, caps.docID)
}

func TestRegisterNoFiles(t *testing.T) {
	t.Parallel()

	caps := &captures{}
	svc := NewService(caps.companyStore(), caps.userStore(), caps.paymentStore(), caps.docStore())

	d := sampleDraft()
	d.Files = nil
	require.NoError(t, svc.Register(context.Background(), "u1", d))
	assert.False(t, caps.document.Uploaded)
}

func TestLast4(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1111", last4("4111111111111111"))
	assert.Equal(t, "123", last4("123"))
	assert.Equal(t, "", last4(""))
}
