// Package quiz runs a fixed, ordered list of questions one at a time and
// keeps score.
package quiz

// CaseKind identifies which physical situation a practice question
// illustrates.
type CaseKind string

const (
	CaseGLBBDistance        CaseKind = "glbb-distance"
	CaseGLBBVelocity        CaseKind = "glbb-velocity"
	CaseProjectileMaxHeight CaseKind = "projectile-max-height"
	CaseProjectileRange     CaseKind = "projectile-range"
)

// CaseKinds lists every known case kind.
var CaseKinds = []CaseKind{
	CaseGLBBDistance,
	CaseGLBBVelocity,
	CaseProjectileMaxHeight,
	CaseProjectileRange,
}

// Valid reports whether k is a known case kind.
func (k CaseKind) Valid() bool {
	for _, c := range CaseKinds {
		if c == k {
			return true
		}
	}
	return false
}

// DefaultTolerance applies to practice questions that do not set one.
const DefaultTolerance = 0.5

// Question is a quiz item. It is either a MultipleChoice or a Practice.
type Question interface {
	QuestionID() string
	QuestionPrompt() string
	QuestionExplanation() string

	isQuestion()
}

// MultipleChoice is answered by picking one of Options.
// CorrectOption must index Options; callers validate this when content is
// loaded.
type MultipleChoice struct {
	ID            string
	Prompt        string
	Explanation   string
	Options       []string
	CorrectOption int
}

// Practice is answered with a number, graded within Tolerance of
// CorrectAnswer.
type Practice struct {
	ID            string
	Prompt        string
	Explanation   string
	Case          CaseKind
	Variables     map[string]float64
	CorrectAnswer float64
	Unit          string
	// Tolerance is the largest accepted absolute error. Zero means an
	// exact match.
	Tolerance float64
}

func (q MultipleChoice) QuestionID() string          { return q.ID }
func (q MultipleChoice) QuestionPrompt() string      { return q.Prompt }
func (q MultipleChoice) QuestionExplanation() string { return q.Explanation }
func (MultipleChoice) isQuestion()                   {}

func (q Practice) QuestionID() string          { return q.ID }
func (q Practice) QuestionPrompt() string      { return q.Prompt }
func (q Practice) QuestionExplanation() string { return q.Explanation }
func (Practice) isQuestion()                   {}

// Accepts reports whether v is within tolerance of the correct answer.
func (q Practice) Accepts(v float64) bool {
	diff := v - q.CorrectAnswer
	if diff < 0 {
		diff = -diff
	}
	return diff <= q.Tolerance
}
