// Package phase derives the dialogue stage of a screening session from the
// candidate record. The phase is computed fresh every turn and never stored,
// so it cannot drift from the record's actual completeness.
package phase

import "github.com/talentscout/screener/internal/candidate"

// Phase is the derived dialogue stage.
type Phase int

const (
	// Collecting means at least one required field is still empty.
	Collecting Phase = iota
	// TechQA means all fields are present and graduated technical questions
	// are in progress.
	TechQA
	// ReadyToClose means the technical phase has produced enough questions
	// and a closing message may go out.
	ReadyToClose
	// Terminated means the conversation has ended.
	Terminated
)

func (p Phase) String() string {
	switch p {
	case Collecting:
		return "collecting"
	case TechQA:
		return "tech_qa"
	case ReadyToClose:
		return "ready_to_close"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// Classify computes the phase for the given record. minQuestions is the
// configured minimum number of technical questions before closing is allowed.
func Classify(rec *candidate.Record, minQuestions int) Phase {
	if !rec.Complete() {
		return Collecting
	}

	if rec.TechPhaseStarted && rec.TechQuestionsAsked >= minQuestions {
		return ReadyToClose
	}

	return TechQA
}
