package models

// Outcome represents the result of an answered quiz round
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
)

// QuizRound represents one multiple-choice question.
//
// Options always contain the correct translation exactly once.
// Selected and Outcome stay empty until the round is answered.
type QuizRound struct {
	Target   WordEntry
	Language Language // Language the options were generated in
	Options  []string
	Selected string
	Outcome  Outcome
}

// CorrectAnswer returns the translation that answers the round
func (r *QuizRound) CorrectAnswer() string {
	return r.Target.Translation(r.Language)
}

// Answered reports whether an answer was already submitted for the round
func (r *QuizRound) Answered() bool {
	return r.Outcome != ""
}
