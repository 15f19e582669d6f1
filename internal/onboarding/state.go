// Package onboarding derives which view a user should see from the four
// external signals: session presence, email verification, profile
// submission, and admin approval. The machine holds no memory of its own;
// the persisted profile_completed flag is the source of truth for the
// submitted signal, so a page reload before approval resumes at the right
// gate.
package onboarding

// Gate names a state in the onboarding flow.
type Gate int

const (
	GateUnauthenticated Gate = iota
	GateEmailUnverified
	GateFormIncomplete
	GateAwaitingApproval
	GateApproved
)

func (g Gate) String() string {
	switch g {
	case GateUnauthenticated:
		return "unauthenticated"
	case GateEmailUnverified:
		return "email_unverified"
	case GateFormIncomplete:
		return "form_incomplete"
	case GateAwaitingApproval:
		return "awaiting_approval"
	case GateApproved:
		return "approved"
	}
	return "unknown"
}

// Inputs are the signals the gate is derived from.
type Inputs struct {
	Authenticated bool
	EmailVerified bool
	Submitted     bool
	Approved      bool
}

// Resolve evaluates the gates in order; the first match wins. The ordering
// is what makes stale combinations safe: an approval arriving while the
// verification flag is still false keeps the user at the verification gate
// until the poller catches up.
func Resolve(in Inputs) Gate {
	switch {
	case !in.Authenticated:
		return GateUnauthenticated
	case !in.EmailVerified:
		return GateEmailUnverified
	case !in.Submitted:
		return GateFormIncomplete
	case !in.Approved:
		return GateAwaitingApproval
	default:
		return GateApproved
	}
}
