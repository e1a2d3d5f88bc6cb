package core

// Transition outcomes recorded by Metrics
const (
	OutcomeAccepted      = "accepted"
	OutcomeForbidden     = "forbidden"
	OutcomeNotFound      = "not_found"
	OutcomeConflict      = "conflict"
	OutcomeTerminalState = "terminal_state"
	OutcomeInvalid       = "invalid_request"
	OutcomeError         = "error"
)

// Metrics records workflow measurements
type Metrics interface {
	// ObserveTransition records one transition attempt and how it ended
	ObserveTransition(action string, outcome string, duration Duration)
	// IncTransactionsCreated counts newly recorded transactions by type
	IncTransactionsCreated(transactionType string)
}
