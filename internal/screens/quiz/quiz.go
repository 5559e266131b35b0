package quiz

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vizlearn/internal/progress"
	qz "github.com/abhisek/vizlearn/internal/quiz"
	"github.com/abhisek/vizlearn/internal/registry"
	"github.com/abhisek/vizlearn/internal/router"
	"github.com/abhisek/vizlearn/internal/screen"
	"github.com/abhisek/vizlearn/internal/ui/components"
	"github.com/abhisek/vizlearn/internal/ui/layout"
	"github.com/abhisek/vizlearn/internal/viz"
)

const frameInterval = 80 * time.Millisecond

// Result screen actions, in button order.
const (
	actionRetry = iota
	actionWatch
	actionHome
	actionCount
)

// QuizScreen runs one quiz session and shows its result.
type QuizScreen struct {
	id       uint64
	cfg      registry.Config
	session  *qz.Session
	progress *progress.Store
	opener   screen.Opener
	logger   *slog.Logger

	mc       components.MultiChoice
	input    components.TextInput
	practice viz.PracticeRenderer
	inputErr string

	result    *qz.Result
	resultSel int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen over cfg's questions. prog and opener may be
// nil. Returns qz.ErrNoQuestions when cfg has no quiz.
func New(cfg registry.Config, prog *progress.Store, opener screen.Opener, logger *slog.Logger) (*QuizScreen, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &QuizScreen{
		id:       nextID(),
		cfg:      cfg,
		progress: prog,
		opener:   opener,
		logger:   logger.With("slug", cfg.Slug),
	}
	sess, err := qz.New(cfg.Quiz, qz.OnFinish(s.onFinish))
	if err != nil {
		return nil, err
	}
	s.session = sess
	s.logger = s.logger.With("quiz_session", sess.ID)
	s.loadQuestion()
	return s, nil
}

func (s *QuizScreen) onFinish(r qz.Result) {
	s.result = &r
	s.resultSel = actionRetry
	s.logger.Info("quiz finished", "score", r.Score, "total", r.Total)
	if s.progress != nil {
		s.progress.SaveQuizScore(context.Background(), s.cfg.Slug, r.Score, r.Total)
	}
}

// loadQuestion prepares the input widgets for the current question.
func (s *QuizScreen) loadQuestion() tea.Cmd {
	s.inputErr = ""
	s.practice = nil
	switch q := s.session.Current().(type) {
	case qz.MultipleChoice:
		s.mc = components.NewMultiChoice(q.Prompt, q.Options, q.CorrectOption)
	case qz.Practice:
		s.input = components.NewTextInput("Your answer", true, 16)
		s.practice = viz.PracticeFor(string(q.Case))
		return s.input.Init()
	}
	return nil
}

func (s *QuizScreen) Init() tea.Cmd {
	var cmd tea.Cmd
	if _, ok := s.session.Current().(qz.Practice); ok {
		cmd = s.input.Init()
	}
	return tea.Batch(cmd, s.tick())
}

func (s *QuizScreen) tick() tea.Cmd {
	id := s.id
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}

func (s *QuizScreen) Title() string {
	return s.cfg.Title + " · Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.result != nil:
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Home"},
		}
	case s.session.Revealed():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if _, ok := s.session.Current().(qz.Practice); ok {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-9", Description: "Answer"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.id != s.id {
			return s, nil
		}
		return s, s.tick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if _, ok := s.session.Current().(qz.Practice); ok && s.result == nil {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.result != nil {
		return s.handleResultKey(msg)
	}

	if s.session.Revealed() {
		switch msg.String() {
		case "enter", "right", "n":
			return s.advance()
		}
		return s, nil
	}

	switch q := s.session.Current().(type) {
	case qz.MultipleChoice:
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		if s.mc.Submitted {
			s.session.SelectOption(s.mc.ChosenIndex)
		}
		return s, cmd

	case qz.Practice:
		if msg.String() == "enter" {
			v, ok := s.input.NumericValue()
			if !ok {
				s.inputErr = "Enter a number, for example 12.5"
				return s, nil
			}
			if s.session.SubmitNumeric(v) {
				s.inputErr = ""
				s.input.Submit(s.session.LastCorrect())
				s.logger.Debug("practice answer", "question", q.ID, "answer", v, "correct", s.session.LastCorrect())
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if !s.session.Advance() {
		return s, nil
	}
	if s.session.Finished() {
		return s, func() tea.Msg { return screen.ProgressChangedMsg{} }
	}
	return s, s.loadQuestion()
}

func (s *QuizScreen) handleResultKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "left", "up", "h", "k":
		s.resultSel = (s.resultSel + actionCount - 1) % actionCount
	case "right", "down", "l", "j", "tab":
		s.resultSel = (s.resultSel + 1) % actionCount
	case "r":
		return s, s.retry()
	case "enter":
		switch s.resultSel {
		case actionRetry:
			return s, s.retry()
		case actionWatch:
			return s, s.watchAgain()
		case actionHome:
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *QuizScreen) retry() tea.Cmd {
	s.session.Retry()
	s.result = nil
	s.logger.Info("quiz retried")
	return s.loadQuestion()
}

func (s *QuizScreen) watchAgain() tea.Cmd {
	if s.opener == nil {
		return nil
	}
	p, err := s.opener.Player(s.cfg.Slug)
	if err != nil {
		s.logger.Warn("open player failed", "err", err)
		return nil
	}
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: p} }
}

// Result returns the final result, or nil while the quiz is in progress.
func (s *QuizScreen) Result() *qz.Result {
	return s.result
}
