package commands

// Outcome describes how a lifecycle command concluded. It lets the API
// boundary distinguish business failures (unknown order, rejected
// transition) from infrastructure failures without inspecting error chains.
type Outcome int

const (
	// OutcomeFailed indicates an infrastructure failure; nothing was persisted.
	// The accompanying error carries the cause.
	OutcomeFailed Outcome = iota

	// OutcomeSucceeded indicates the status change was persisted and the
	// corresponding event published.
	OutcomeSucceeded

	// OutcomeNotFound indicates no order exists for the requested id.
	OutcomeNotFound

	// OutcomeRejected indicates the state machine rejected the transition.
	// The order is left unchanged.
	OutcomeRejected

	// OutcomePublishFailed indicates the status change was persisted but the
	// event could not be delivered to the broker. The persisted state is
	// kept; delivery is deferred to operational tooling. The accompanying
	// error carries the publish failure.
	OutcomePublishFailed
)

// Succeeded reports whether the command fully succeeded.
func (o Outcome) Succeeded() bool {
	return o == OutcomeSucceeded
}
