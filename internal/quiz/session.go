package quiz

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrNoQuestions is returned when starting a quiz with no questions.
var ErrNoQuestions = errors.New("quiz: no questions")

// Result is the final outcome of a session.
type Result struct {
	Score int
	Total int
}

// Session tracks one run through a quiz. It is not safe for concurrent
// use; the UI drives it from a single goroutine.
type Session struct {
	// ID identifies the run in logs.
	ID string

	questions []Question

	current int

	// selected is the chosen option for a multiple choice question.
	selected *int

	// submitted is the numeric answer for a practice question.
	submitted *float64

	revealed    bool
	lastCorrect bool
	score       int
	finished    bool

	onFinish func(Result)
}

// Option configures a Session.
type Option func(*Session)

// OnFinish registers the sink that receives the final result. It is
// called exactly once per completed run.
func OnFinish(fn func(Result)) Option {
	return func(s *Session) { s.onFinish = fn }
}

// New starts a session over questions.
func New(questions []Question, opts ...Option) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	s := &Session{
		ID:        uuid.NewString(),
		questions: questions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Current returns the active question.
func (s *Session) Current() Question {
	return s.questions[s.current]
}

// CurrentIndex returns the zero-based index of the active question.
func (s *Session) CurrentIndex() int { return s.current }

// Total returns the number of questions.
func (s *Session) Total() int { return len(s.questions) }

// Score returns the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// Revealed reports whether the active question has been answered.
func (s *Session) Revealed() bool { return s.revealed }

// Finished reports whether the last question has been answered and
// advanced past.
func (s *Session) Finished() bool { return s.finished }

// LastCorrect reports whether the revealed answer was correct.
func (s *Session) LastCorrect() bool { return s.revealed && s.lastCorrect }

// Selected returns the chosen option, if any.
func (s *Session) Selected() (int, bool) {
	if s.selected == nil {
		return 0, false
	}
	return *s.selected, true
}

// Submitted returns the submitted numeric answer, if any.
func (s *Session) Submitted() (float64, bool) {
	if s.submitted == nil {
		return 0, false
	}
	return *s.submitted, true
}

// SelectOption answers a multiple choice question. It is ignored for
// practice questions, after the answer is revealed, and once finished.
// It reports whether the answer was accepted.
func (s *Session) SelectOption(i int) bool {
	if s.finished || s.revealed {
		return false
	}
	q, ok := s.Current().(MultipleChoice)
	if !ok {
		return false
	}
	s.selected = &i
	s.reveal(i == q.CorrectOption)
	return true
}

// SubmitNumeric answers a practice question. Non-finite values are
// ignored, as are calls for multiple choice questions, after reveal, and
// once finished. It reports whether the answer was accepted.
func (s *Session) SubmitNumeric(v float64) bool {
	if s.finished || s.revealed || math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	q, ok := s.Current().(Practice)
	if !ok {
		return false
	}
	s.submitted = &v
	s.reveal(q.Accepts(v))
	return true
}

func (s *Session) reveal(correct bool) {
	s.revealed = true
	s.lastCorrect = correct
	if correct {
		s.score++
	}
}

// Advance moves past a revealed question. Advancing past the last question
// finishes the session and emits the result. It reports whether the
// session moved.
func (s *Session) Advance() bool {
	if s.finished || !s.revealed {
		return false
	}
	if s.current == len(s.questions)-1 {
		s.finished = true
		if s.onFinish != nil {
			s.onFinish(Result{Score: s.score, Total: len(s.questions)})
		}
		return true
	}
	s.current++
	s.clearAnswer()
	return true
}

// Retry restarts the session from the first question.
func (s *Session) Retry() {
	s.current = 0
	s.score = 0
	s.finished = false
	s.clearAnswer()
}

func (s *Session) clearAnswer() {
	s.selected = nil
	s.submitted = nil
	s.revealed = false
	s.lastCorrect = false
}

// Percentage returns the score as a percentage of the question count.
func (s *Session) Percentage() float64 {
	return float64(s.score) / float64(len(s.questions)) * 100
}

// ParseNumeric parses a typed answer. Surrounding space is ignored and a
// comma is accepted as the decimal separator. Non-finite values are
// rejected.
func ParseNumeric(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	if !strings.Contains(text, ".") {
		text = strings.Replace(text, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
