// Package form implements the multi-step onboarding form: per-step
// validation, cross-step draft state, the file-upload policy, and the final
// multi-record commit through a Registrar.
package form

import (
	"context"
	"errors"
	"sync"

	"proinc-backend/internal/models"
)

var (
	ErrNotFinalStep = errors.New("submit is only allowed from the final step")
	ErrNoDraft      = errors.New("no draft in progress")
)

// Registrar performs the coordinated multi-record registration write. The
// store offers per-document atomicity only, so a partial failure leaves
// earlier writes in place; the controller reports the whole operation as
// failed and keeps the draft so the user can retry.
type Registrar interface {
	Register(ctx context.Context, userID string, draft *Draft) error
}

// Owner identifies the session a draft belongs to and seeds the prefilled
// fields.
type Owner struct {
	ID        string
	Email     string
	FirstName string
}

// Controller owns all live drafts, one per onboarding session, for the
// lifetime of this process.
type Controller struct {
	mu        sync.Mutex
	drafts    map[string]*Draft
	registrar Registrar
}

func NewController(registrar Registrar) *Controller {
	return &Controller{
		drafts:    make(map[string]*Draft),
		registrar: registrar,
	}
}

func (c *Controller) draftFor(owner Owner) *Draft {
	d, ok := c.drafts[owner.ID]
	if !ok {
		d = newDraft(owner)
		c.drafts[owner.ID] = d
	}
	return d
}

// Snapshot returns a copy of the owner's draft, creating it on first touch.
func (c *Controller) Snapshot(owner Owner) Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draftFor(owner).clone()
}

// UpdateField merges one field into the draft without validating it.
func (c *Controller) UpdateField(owner Owner, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draftFor(owner).Apply(key, value)
}

// Advance validates the current step. On failure the step index does not
// move and the rejection lists the offending fields; on success the index
// increments, clamped to the last step.
func (c *Controller) Advance(owner Owner) (int, *ValidationError) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := c.draftFor(owner)
	if verr := validateStep(d, d.Step); verr != nil {
		return d.Step, verr
	}
	if d.Step < len(StepNames)-1 {
		d.Step++
	}
	return d.Step, nil
}

// Retreat moves one step back, clamped to zero. No validation.
func (c *Controller) Retreat(owner Owner) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := c.draftFor(owner)
	if d.Step > 0 {
		d.Step--
	}
	return d.Step
}

// AddFiles queues uploads under the given document type, applying the
// upload policy per file.
func (c *Controller) AddFiles(owner Owner, docType models.DocumentType, inputs []FileInput) ([]models.FileMeta, []FileRejection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draftFor(owner).addFiles(docType, inputs)
}

// SetProgress records upload progress for a queued file. Reports false when
// the file is no longer queued, telling the uploader to stop.
func (c *Controller) SetProgress(owner Owner, name string, percent int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draftFor(owner).setProgress(name, percent)
}

// RemoveFile drops a queued file and its progress tracking.
func (c *Controller) RemoveFile(owner Owner, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draftFor(owner).removeFile(name)
}

// Submit validates every step, then hands the draft to the registrar for
// the four-record write. The draft is discarded only on success; a failed
// registration keeps it so nothing the user typed is lost.
func (c *Controller) Submit(ctx context.Context, owner Owner) error {
	c.mu.Lock()
	d, ok := c.drafts[owner.ID]
	if !ok {
		c.mu.Unlock()
		return ErrNoDraft
	}
	if d.Step != len(StepNames)-1 {
		c.mu.Unlock()
		return ErrNotFinalStep
	}

	all := fieldErrors{}
	for step := range StepNames {
		if verr := validateStep(d, step); verr != nil {
			for k, v := range verr.Fields {
				all[k] = v
			}
		}
	}
	if len(all) > 0 {
		c.mu.Unlock()
		return &ValidationError{Fields: all}
	}

	snapshot := d.clone()
	c.mu.Unlock()

	// The store write happens outside the lock; a slow registration must not
	// block other sessions' drafts.
	if err := c.registrar.Register(ctx, owner.ID, &snapshot); err != nil {
		return err
	}

	c.Discard(owner.ID)
	return nil
}

// Discard drops the draft, e.g. after a successful submit or when the
// owning session navigates away.
func (c *Controller) Discard(ownerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drafts, ownerID)
}
