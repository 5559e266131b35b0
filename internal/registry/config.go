package registry

import (
	"fmt"

	"github.com/abhisek/vizlearn/internal/playback"
	"github.com/abhisek/vizlearn/internal/quiz"
	"github.com/abhisek/vizlearn/internal/viz"
)

// Config is the declarative half of a visualization module: its metadata,
// step script and quiz.
type Config struct {
	Slug        string
	Title       string
	Description string
	Category    string
	Icon        string
	Color       string
	Steps       []playback.Step
	Quiz        []quiz.Question
}

// Practice returns the practice questions of the quiz, in order.
func (c Config) Practice() []quiz.Practice {
	var out []quiz.Practice
	for _, q := range c.Quiz {
		if p, ok := q.(quiz.Practice); ok {
			out = append(out, p)
		}
	}
	return out
}

// Entry pairs a module's config with its render factory.
type Entry struct {
	Config Config
	Render viz.Factory
}

// Question type discriminators in content files.
const (
	typeMultipleChoice = "multiple-choice"
	typePractice       = "practice"
)

type configDoc struct {
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Icon        string          `json:"icon"`
	Color       string          `json:"color"`
	Steps       []playback.Step `json:"steps"`
	Quiz        []questionDoc   `json:"quiz"`
}

type questionDoc struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Prompt      string `json:"prompt"`
	Explanation string `json:"explanation"`

	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`

	Case          string             `json:"case"`
	Variables     map[string]float64 `json:"variables"`
	CorrectAnswer float64            `json:"correctAnswer"`
	Unit          string             `json:"unit"`
	Tolerance     *float64           `json:"tolerance"`
}

func (d configDoc) config() (Config, error) {
	c := Config{
		Slug:        d.Slug,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Icon:        d.Icon,
		Color:       d.Color,
		Steps:       d.Steps,
	}
	for _, q := range d.Quiz {
		switch q.Type {
		case "", typeMultipleChoice:
			c.Quiz = append(c.Quiz, quiz.MultipleChoice{
				ID:            q.ID,
				Prompt:        q.Prompt,
				Explanation:   q.Explanation,
				Options:       q.Options,
				CorrectOption: q.CorrectOption,
			})
		case typePractice:
			tol := quiz.DefaultTolerance
			if q.Tolerance != nil {
				tol = *q.Tolerance
			}
			c.Quiz = append(c.Quiz, quiz.Practice{
				ID:            q.ID,
				Prompt:        q.Prompt,
				Explanation:   q.Explanation,
				Case:          quiz.CaseKind(q.Case),
				Variables:     q.Variables,
				CorrectAnswer: q.CorrectAnswer,
				Unit:          q.Unit,
				Tolerance:     tol,
			})
		default:
			return Config{}, fmt.Errorf("question %q: unknown type %q", q.ID, q.Type)
		}
	}
	return c, nil
}
