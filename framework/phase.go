package framework

import "fmt"

// Phase is the stage a scenario has reached.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseOpening
	PhaseReady
	PhaseStimulating
	PhaseObserving
	PhaseAsserting
	PhaseTearingDown
	PhaseAborted
)

var phaseNames = map[Phase]string{
	PhaseNotStarted:  "not started",
	PhaseOpening:     "opening",
	PhaseReady:       "ready",
	PhaseStimulating: "stimulating",
	PhaseObserving:   "observing",
	PhaseAsserting:   "asserting",
	PhaseTearingDown: "tearing down",
	PhaseAborted:     "aborted",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Scenarios may go back and forth between stimulating, observing and asserting, since a
// workflow can have several steps that each get checked. Any phase can move to aborted.
var phaseTransitions = map[Phase][]Phase{
	PhaseNotStarted:  {PhaseOpening},
	PhaseOpening:     {PhaseReady, PhaseTearingDown},
	PhaseReady:       {PhaseStimulating, PhaseObserving, PhaseTearingDown},
	PhaseStimulating: {PhaseObserving, PhaseTearingDown},
	PhaseObserving:   {PhaseStimulating, PhaseAsserting, PhaseTearingDown},
	PhaseAsserting:   {PhaseStimulating, PhaseObserving, PhaseTearingDown},
	PhaseTearingDown: {PhaseNotStarted},
}

// CanMoveTo reports whether a scenario in phase p may enter phase next. Staying in the
// same phase is always allowed.
func (p Phase) CanMoveTo(next Phase) bool {
	if next == p || next == PhaseAborted {
		return true
	}
	for _, allowed := range phaseTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}
