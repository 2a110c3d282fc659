package model

// Recorder receives account lifecycle events for metrics.
type Recorder interface {
	Authentication(success bool)
	Registration(outcome RegisterOutcome)
	ResetRequest(kind ResetOutcomeKind)
	DispatchFailure()
}

// NopRecorder discards all events.
type NopRecorder struct{}

func (NopRecorder) Authentication(bool)           {}
func (NopRecorder) Registration(RegisterOutcome)  {}
func (NopRecorder) ResetRequest(ResetOutcomeKind) {}
func (NopRecorder) DispatchFailure()              {}
