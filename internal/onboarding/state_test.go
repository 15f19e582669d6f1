package onboarding

import "testing"

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Inputs
		want Gate
	}{
		{
			name: "no session",
			in:   Inputs{},
			want: GateUnauthenticated,
		},
		{
			name: "no session ignores other flags",
			in:   Inputs{EmailVerified: true, Submitted: true, Approved: true},
			want: GateUnauthenticated,
		},
		{
			name: "signed in, unverified",
			in:   Inputs{Authenticated: true},
			want: GateEmailUnverified,
		},
		{
			name: "unverified wins over stale approval",
			in:   Inputs{Authenticated: true, Submitted: true, Approved: true},
			want: GateEmailUnverified,
		},
		{
			name: "verified, form not submitted",
			in:   Inputs{Authenticated: true, EmailVerified: true},
			want: GateFormIncomplete,
		},
		{
			name: "submitted, waiting for approval",
			in:   Inputs{Authenticated: true, EmailVerified: true, Submitted: true},
			want: GateAwaitingApproval,
		},
		{
			name: "approved",
			in:   Inputs{Authenticated: true, EmailVerified: true, Submitted: true, Approved: true},
			want: GateApproved,
		},
		{
			name: "approval without submission still shows the form",
			in:   Inputs{Authenticated: true, EmailVerified: true, Approved: true},
			want: GateFormIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.in); got != tt.want {
				t.Fatalf("Resolve(%+v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGateString(t *testing.T) {
	t.Parallel()

	if got := GateAwaitingApproval.String(); got != "awaiting_approval" {
		t.Fatalf("unexpected gate name %q", got)
	}
	if got := Gate(99).String(); got != "unknown" {
		t.Fatalf("unexpected gate name %q", got)
	}
}
