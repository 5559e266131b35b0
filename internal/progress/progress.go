// Package progress records which visualizations a learner has completed,
// their best quiz scores, and a daily activity streak.
package progress

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/abhisek/vizlearn/internal/clock"
	"github.com/abhisek/vizlearn/internal/storage"
)

// Storage keys.
const (
	ProgressKey = "viz-progress"
	StreakKey   = "viz-streak"
)

// dateLayout is the calendar-day format stored in the streak record.
const dateLayout = "2006-01-02"

// Progress is the record for one visualization.
type Progress struct {
	Completed   bool       `json:"completed"`
	QuizScore   *int       `json:"quizScore"`
	QuizTotal   *int       `json:"quizTotal"`
	CompletedAt *time.Time `json:"completedAt"`
	Attempts    int        `json:"attempts"`
}

// Streak is the global activity streak.
type Streak struct {
	LastActiveDate string `json:"lastActiveDate"`
	Count          int    `json:"count"`
}

// Stats aggregates all progress records.
type Stats struct {
	TotalVisualized    int
	TotalQuizCompleted int
	TotalCorrect       int
	TotalQuestions     int
	AverageScore       int
	Streak             int
	// LastActivityDate is empty when there has been no activity.
	LastActivityDate string
}

// Store reads and writes progress through a storage adapter. Read-modify-
// write cycles are serialized because completion can be reported from a
// timer goroutine.
type Store struct {
	mu      sync.Mutex
	storage *storage.Adapter
	clock   clock.Clock
	loc     *time.Location
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for timestamps and calendar days.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLocation sets the time zone that defines a calendar day.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store over a.
func New(a *storage.Adapter, opts ...Option) *Store {
	s := &Store{
		storage: a,
		clock:   clock.Real(),
		loc:     time.Local,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MarkCompleted records that the visualization slug was watched to the end.
// An existing completion time is never overwritten.
func (s *Store) MarkCompleted(ctx context.Context, slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	all := s.load(ctx)
	p := all[slug]
	p.Completed = true
	if p.CompletedAt == nil {
		p.CompletedAt = &now
	}
	all[slug] = p
	s.save(ctx, all)
	s.touchStreak(ctx, now)

	s.logger.Info("visualization completed", "slug", slug)
}

// SaveQuizScore records a finished quiz. Only a better score replaces the
// stored one; the total always reflects the latest quiz.
func (s *Store) SaveQuizScore(ctx context.Context, slug string, score, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	all := s.load(ctx)
	p := all[slug]
	if p.QuizScore == nil || score > *p.QuizScore {
		p.QuizScore = &score
	}
	p.QuizTotal = &total
	p.Attempts++
	p.Completed = true
	if p.CompletedAt == nil {
		p.CompletedAt = &now
	}
	all[slug] = p
	s.save(ctx, all)
	s.touchStreak(ctx, now)

	s.logger.Info("quiz score saved", "slug", slug, "score", score, "total", total, "best", *p.QuizScore)
}

// GetProgress returns the record for slug, or the zero record.
func (s *Store) GetProgress(ctx context.Context, slug string) Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)[slug]
}

// All returns every record keyed by slug.
func (s *Store) All(ctx context.Context) map[string]Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Slugs returns the slugs that have a record, sorted.
func (s *Store) Slugs(ctx context.Context) []string {
	all := s.All(ctx)
	slugs := make([]string, 0, len(all))
	for slug := range all {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// GetStats aggregates all records. A streak whose last day is older than
// yesterday reports zero without touching the stored record.
func (s *Store) GetStats(ctx context.Context) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Stats
	for _, p := range s.load(ctx) {
		if p.Completed {
			st.TotalVisualized++
		}
		if p.QuizScore != nil {
			st.TotalQuizCompleted++
			st.TotalCorrect += *p.QuizScore
			if p.QuizTotal != nil {
				st.TotalQuestions += *p.QuizTotal
			}
		}
	}
	if st.TotalQuestions > 0 {
		st.AverageScore = int(math.Round(float64(st.TotalCorrect) / float64(st.TotalQuestions) * 100))
	}

	streak, ok := s.loadStreak(ctx)
	if ok {
		today, yesterday := s.days(s.clock.Now())
		if streak.LastActiveDate == today || streak.LastActiveDate == yesterday {
			st.Streak = streak.Count
		}
		st.LastActivityDate = streak.LastActiveDate
	}
	return st
}

// ResetProgress deletes every record and the streak.
func (s *Store) ResetProgress(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.storage.Remove(ctx, ProgressKey)
	s.storage.Remove(ctx, StreakKey)
	s.logger.Info("progress reset")
}

// touchStreak counts today's activity. Callers hold mu.
func (s *Store) touchStreak(ctx context.Context, now time.Time) {
	today, yesterday := s.days(now)
	streak, ok := s.loadStreak(ctx)

	switch {
	case ok && streak.LastActiveDate == today:
		return
	case ok && streak.LastActiveDate == yesterday:
		streak.Count++
	default:
		streak.Count = 1
	}
	streak.LastActiveDate = today
	storage.SetJSON(ctx, s.storage, StreakKey, streak)
}

// Today returns the current calendar day in the store's location.
func (s *Store) Today() string {
	today, _ := s.days(s.clock.Now())
	return today
}

func (s *Store) days(now time.Time) (today, yesterday string) {
	local := now.In(s.loc)
	return local.Format(dateLayout), local.AddDate(0, 0, -1).Format(dateLayout)
}

func (s *Store) load(ctx context.Context) map[string]Progress {
	all := storage.GetJSON[map[string]Progress](ctx, s.storage, ProgressKey, nil)
	if all == nil {
		all = make(map[string]Progress)
	}
	return all
}

func (s *Store) save(ctx context.Context, all map[string]Progress) {
	storage.SetJSON(ctx, s.storage, ProgressKey, all)
}

func (s *Store) loadStreak(ctx context.Context) (Streak, bool) {
	st := storage.GetJSON(ctx, s.storage, StreakKey, Streak{})
	return st, st.LastActiveDate != ""
}
