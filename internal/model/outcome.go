package model

// RegisterOutcome tells apart the silent branches of registration.
// Callers outside the service always report success.
type RegisterOutcome int

const (
	// OutcomeCreated means a new account was stored.
	OutcomeCreated RegisterOutcome = iota + 1
	// OutcomeAlreadyExists means the email was taken and nothing happened.
	OutcomeAlreadyExists
)

func (o RegisterOutcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeAlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

// ResetOutcome tells apart the silent branches of a forgot-password request.
type ResetOutcome struct {
	Kind ResetOutcomeKind
	// DispatchErr is set when the token was stored but the email failed.
	DispatchErr error
}

// ResetOutcomeKind enumerates forgot-password results.
type ResetOutcomeKind int

const (
	// OutcomeResetIssued means a reset token was stored and mailed.
	OutcomeResetIssued ResetOutcomeKind = iota + 1
	// OutcomeNotFoundSilent means no account matched; nothing happened.
	OutcomeNotFoundSilent
)

func (k ResetOutcomeKind) String() string {
	switch k {
	case OutcomeResetIssued:
		return "issued"
	case OutcomeNotFoundSilent:
		return "not_found"
	default:
		return "unknown"
	}
}
