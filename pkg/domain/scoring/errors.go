package scoring

import "fmt"

// InvalidProfile is returned by BuildZones when the resolved max_hr does
// not exceed the resolved resting_hr, or the heart-rate reserve collapses
// to nothing. Not retryable - the caller must surface it as a validation
// error.
type InvalidProfile struct {
	RestingHR int
	MaxHR     int
	Reason    string
}

func (e *InvalidProfile) Error() string {
	return fmt.Sprintf("invalid profile (resting_hr=%d, max_hr=%d): %s", e.RestingHR, e.MaxHR, e.Reason)
}

// EmptyWorkout is returned by Score when the sample sequence is empty.
// The enclosing service typically treats this as "no score to record", not
// as a hard failure - the workout may still be stored.
type EmptyWorkout struct{}

func (e *EmptyWorkout) Error() string {
	return "empty workout: no heart-rate samples to score"
}

// NegativeSampleValue is raised by upload-path validation, before Score is
// ever entered - the core itself never receives negative bpm values once
// this check has run.
type NegativeSampleValue struct {
	Index int
	BPM   int
}

func (e *NegativeSampleValue) Error() string {
	return fmt.Sprintf("negative heart-rate sample at index %d: bpm=%d", e.Index, e.BPM)
}

// UnsortedInput is never raised by Score (which sorts defensively) - it is
// reserved for strict-mode test helpers that want to assert a caller
// already produced sorted input.
type UnsortedInput struct {
	Index int
}

func (e *UnsortedInput) Error() string {
	return fmt.Sprintf("unsorted input at index %d", e.Index)
}
