package pipeline

import "github.com/jonathan/resu/internal/pipeline/steps"

// State is the stage a pipeline run is in
type State string

// Pipeline states
const (
	StateIdle        State = "idle"
	StateParsing     State = "parsing"
	StateSelecting   State = "selecting"
	StateReviewing   State = "reviewing"
	StateGenerating  State = "generating"
	StateScoring     State = "scoring"
	StateCoverLetter State = "cover-letter"
	StateComplete    State = "complete"
	StateError       State = "error"
)

// stepStates maps each step to the state it runs in. Persist runs while the
// run is still in the cover-letter state.
var stepStates = map[steps.Name]State{
	steps.Parse:       StateParsing,
	steps.Select:      StateSelecting,
	steps.Generate:    StateGenerating,
	steps.Score:       StateScoring,
	steps.CoverLetter: StateCoverLetter,
	steps.Persist:     StateCoverLetter,
}

// InFlight reports whether the state belongs to a running operation
func (s State) InFlight() bool {
	switch s {
	case StateParsing, StateSelecting, StateGenerating, StateScoring, StateCoverLetter:
		return true
	default:
		return false
	}
}
