package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/vizlearn/internal/quiz"
	"github.com/abhisek/vizlearn/internal/ui/components"
	"github.com/abhisek/vizlearn/internal/ui/theme"
	"github.com/abhisek/vizlearn/internal/viz"
)

// practiceHeight is the illustration height for practice questions.
const practiceHeight = 9

func (s *QuizScreen) View(width, height int) string {
	if s.result != nil {
		return s.renderResult(width, height)
	}

	cw := components.ContentWidth(width)
	var sections []string

	bar := components.NewProgressBar(
		fmt.Sprintf("Question %d/%d", s.session.CurrentIndex()+1, s.session.Total()),
		float64(s.session.CurrentIndex())/float64(s.session.Total()),
		false, cw)
	bar.Fill = theme.Named(s.cfg.Color)
	sections = append(sections, bar.View())

	switch q := s.session.Current().(type) {
	case qz.MultipleChoice:
		sections = append(sections, s.mc.View())
	case qz.Practice:
		sections = append(sections, s.renderPractice(q, cw))
	}

	if s.session.Revealed() {
		sections = append(sections, s.renderFeedback(cw))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(cw).Render(content))
}

func (s *QuizScreen) renderPractice(q qz.Practice, cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(q.Prompt))
	b.WriteString("\n\n")

	if s.practice != nil {
		props := viz.PracticeProps{
			Variables:     q.Variables,
			CorrectAnswer: q.CorrectAnswer,
			CaseKind:      string(q.Case),
			IsRunning:     s.session.Revealed(),
		}
		if v, ok := s.session.Submitted(); ok {
			props.UserAnswer = &v
		}
		out, err := viz.SafeRenderPractice(s.practice, props, cw, practiceHeight)
		if err != nil {
			s.logger.Error("practice render failed", "err", err)
			out = theme.Hint.Render("(illustration unavailable)")
		}
		b.WriteString(out)
		b.WriteString("\n\n")
	}

	b.WriteString(s.input.View())
	b.WriteString(" ")
	b.WriteString(theme.Hint.Render(q.Unit))
	if s.inputErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.inputErr))
	}
	return b.String()
}

func (s *QuizScreen) renderFeedback(cw int) string {
	q := s.session.Current()

	var verdict string
	if s.session.LastCorrect() {
		verdict = theme.Correct.Render("✓ Correct!")
	} else {
		answer := ""
		switch q := q.(type) {
		case qz.MultipleChoice:
			answer = q.Options[q.CorrectOption]
		case qz.Practice:
			answer = formatNumber(q.CorrectAnswer) + " " + q.Unit
		}
		verdict = theme.Incorrect.Render("✗ Not quite. The answer is " + answer + ".")
	}

	var b strings.Builder
	b.WriteString(verdict)
	if exp := q.QuestionExplanation(); exp != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Render(exp))
	}

	next := "Press Enter for the next question"
	if s.session.CurrentIndex() == s.session.Total()-1 {
		next = "Press Enter to see your result"
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(next))
	return b.String()
}

func (s *QuizScreen) renderResult(width, height int) string {
	r := *s.result
	pct := 0.0
	if r.Total > 0 {
		pct = float64(r.Score) / float64(r.Total) * 100
	}
	band := qz.BandFor(pct)
	cw := components.ContentWidth(width)

	headline := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("%s  %d/%d  ·  %.0f%%", band.Emoji, r.Score, r.Total, pct))
	message := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Align(lipgloss.Center).
		Render(band.Message)

	border := theme.Success
	if pct < 50 {
		border = theme.Accent
	}
	card := components.Card(headline+"\n\n"+message, cw, border)

	labels := []string{"TRY AGAIN", "WATCH AGAIN", "HOME"}
	row := components.ButtonRow(labels, s.resultSel, cw)

	title := theme.Title.Width(cw).Render("Quiz complete!")
	content := lipgloss.JoinVertical(lipgloss.Center, title, "", card, "", row)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// formatNumber prints v without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
