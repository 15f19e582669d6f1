package form

import (
	"context"
	"errors"
	"testing"

	"proinc-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrar struct {
	err    error
	calls  int
	userID string
	draft  *Draft
}

func (f *fakeRegistrar) Register(ctx context.Context, userID string, draft *Draft) error {
	f.calls++
	f.userID = userID
	f.draft = draft
	return f.err
}

var owner = Owner{ID: "u1", Email: "alice@x.com", FirstName: "Alice"}

func fillCompanyStep(t *testing.T, c *Controller) {
	t.Helper()
	fields := map[string]string{
		"companyName":         "Acme Ltd",
		"tin":                 "123-456-789",
		"description":         "We build everything under the sun",
		"brelaName":           "Acme",
		"businessLicenceYear": "2020",
		"location":            "Dar es Salaam",
		"contact":             "+255700000000",
		"companyEmail":        "info@acme.example",
	}
	for k, v := range fields {
		require.NoError(t, c.UpdateField(owner, k, v))
	}
}

func fillUserStep(t *testing.T, c *Controller) {
	t.Helper()
	fields := map[string]string{
		"firstName": "Alice",
		"phone":     "0700000000",
		"email":     "alice@x.com",
		"role":      "supplier",
		"birthday":  "1990-04-01",
	}
	for k, v := range fields {
		require.NoError(t, c.UpdateField(owner, k, v))
	}
}

func fillPaymentStep(t *testing.T, c *Controller) {
	t.Helper()
	fields := map[string]string{
		"paymentMethod": "card",
		"cardNumber":    "4111111111111111",
		"expiry":        "12/30",
		"cvv":           "123",
	}
	for k, v := range fields {
		require.NoError(t, c.UpdateField(owner, k, v))
	}
}

func advanceToFinalStep(t *testing.T, c *Controller) {
	t.Helper()
	fillCompanyStep(t, c)
	fillUserStep(t, c)
	fillPaymentStep(t, c)
	for i := 0; i < len(StepNames)-1; i++ {
		_, verr := c.Advance(owner)
		require.Nil(t, verr, "step %d should validate", i)
	}
}

func TestPrefillFromOwner(t *testing.T) {
	t.Parallel()

	c := NewController(&fakeRegistrar{})
	d := c.Snapshot(owner)

	assert.Equal(t, "alice@x.com", d.Email)
	assert.Equal(t, "Alice", d.FirstName)
	assert.Equal(t, string(models.PaymentCard), d.PaymentMethod)
	assert.Equal(t, StepCompany, d.Step)
}

func TestAdvanceBlockedByValidation(t *testing.T) {
	t.Parallel()

	c := NewController(&fakeRegistrar{})

	step, verr := c.Advance(owner)
	require.NotNil(t, verr)
	assert.Equal(t, StepCompany, step, "step must not move on validation failure")
	assert.Contains(t, verr.Fields, "companyName")
	assert.Contains(t, verr.Fields, "tin")
	assert.Contains(t, verr.Fields, "companyEmail")

	fillCompanyStep(t, c)
	step, verr = c.Advance(owner)
	require.Nil(t, verr)
	assert.Equal(t, StepUser, step)
}

func TestAdvanceClampsAtLastStep(t *testing.T) {
	t.Parallel()

	c := NewController(&fakeRegistrar{})
	advanceToFinalStep(t, c)

	step, verr := c.Advance(owner)
	require.Nil(t, verr)
	assert.Equal(t, StepDocuments, step, "advance past the last step must clamp")
}

func TestRetreatClampsAtZero(t *testing.T) {
	t.Parallel()

	c := NewController(&fakeRegistrar{})

	assert.Equal(t, StepCompany, c.Retreat(owner))

	fillCompanyStep(t, c)
	_, verr := c.Advance(owner)
	require.Nil(t, verr)

	assert.Equal(t, StepCompany, c.Retreat(owner))
	assert.Equal(t, StepCompany, c.Retreat(owner))
}

func TestUpdateFieldUnknownKey(t *testing.T) {
	t.Parallel()

	c := NewController(&fakeRegistrar{})
	err := c.UpdateField(owner, "nope", "x")
	require.Error(t, err)
}

func TestSubmitOnlyFromFinalStep(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{}
	c := NewController(reg)
	fillCompanyStep(t, c)

	err := c.Submit(context.Background(), owner)
	require.ErrorIs(t, err, ErrNotFinalStep)
	assert.Zero(t, reg.calls)
}

func TestSubmitWithoutDraft(t *testing.T) {
	t.Parallel()

	c := NewController(&fakeRegistrar{})
	err := c.Submit(context.Background(), owner)
	require.ErrorIs(t, err, ErrNoDraft)
}

func TestSubmitHappyPath(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{}
	c := NewController(reg)
	advanceToFinalStep(t, c)

	require.NoError(t, c.Submit(context.Background(), owner))
	assert.Equal(t, 1, reg.calls)
	assert.Equal(t, "u1", reg.userID)
	assert.Equal(t, "Acme Ltd", reg.draft.CompanyName)

	// draft is discarded: a fresh snapshot starts over
	d := c.Snapshot(owner)
	assert.Equal(t, StepCompany, d.Step)
	assert.Empty(t, d.CompanyName)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{err: errors.New("store write rejected")}
	c := NewController(reg)
	advanceToFinalStep(t, c)

	err := c.Submit(context.Background(), owner)
	require.Error(t, err)

	// everything the user typed survives for a retry
	d := c.Snapshot(owner)
	assert.Equal(t, StepDocuments, d.Step)
	assert.Equal(t, "Acme Ltd", d.CompanyName)
}

func TestSubmitRevalidatesAllSteps(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{}
	c := NewController(reg)
	advanceToFinalStep(t, c)

	// corrupt an earlier step after it was passed
	require.NoError(t, c.UpdateField(owner, "companyEmail", "not-an-email"))

	err := c.Submit(context.Background(), owner)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "companyEmail")
	assert.Zero(t, reg.calls)
}
