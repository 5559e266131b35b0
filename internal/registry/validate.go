package registry

import (
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/vizlearn/internal/quiz"
)

// validateModules cross-checks the module table against loaded content.
// Returns a combined error describing all problems found, or nil if valid.
func validateModules(modules []module, content map[string]Config) error {
	var errs []string

	slugs := make(map[string]bool, len(modules))
	for _, m := range modules {
		if slugs[m.slug] {
			errs = append(errs, fmt.Sprintf("duplicate module slug: %q", m.slug))
		}
		slugs[m.slug] = true
		if m.render == nil {
			errs = append(errs, fmt.Sprintf("module %q has no render factory", m.slug))
		}
		if _, ok := content[m.slug]; !ok {
			errs = append(errs, fmt.Sprintf("module %q has no content file", m.slug))
		}
	}

	for file, c := range content {
		if !slugs[file] {
			errs = append(errs, fmt.Sprintf("content file %q has no module", file))
		}
		if c.Slug != file {
			errs = append(errs, fmt.Sprintf("content file %q declares slug %q", file, c.Slug))
		}
		errs = append(errs, validateConfig(c)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateConfig(c Config) []string {
	var errs []string

	if len(c.Steps) == 0 {
		errs = append(errs, fmt.Sprintf("%s: no steps", c.Slug))
	}
	stepIDs := make(map[string]bool, len(c.Steps))
	for _, s := range c.Steps {
		if stepIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("%s: duplicate step ID %q", c.Slug, s.ID))
		}
		stepIDs[s.ID] = true
		if s.DurationMs < 0 {
			errs = append(errs, fmt.Sprintf("%s: step %q has negative duration", c.Slug, s.ID))
		}
	}

	questionIDs := make(map[string]bool, len(c.Quiz))
	for _, q := range c.Quiz {
		id := q.QuestionID()
		if questionIDs[id] {
			errs = append(errs, fmt.Sprintf("%s: duplicate question ID %q", c.Slug, id))
		}
		questionIDs[id] = true

		switch q := q.(type) {
		case quiz.MultipleChoice:
			if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
				errs = append(errs, fmt.Sprintf("%s: question %q correct option %d out of range [0,%d)",
					c.Slug, id, q.CorrectOption, len(q.Options)))
			}
		case quiz.Practice:
			if !q.Case.Valid() {
				errs = append(errs, fmt.Sprintf("%s: question %q has unknown case %q", c.Slug, id, q.Case))
			}
			if q.Tolerance < 0 || math.IsNaN(q.Tolerance) {
				errs = append(errs, fmt.Sprintf("%s: question %q has negative tolerance", c.Slug, id))
			}
		}
	}
	return errs
}
