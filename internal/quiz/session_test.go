package quiz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mc(id string, correct int) MultipleChoice {
	return MultipleChoice{
		ID:            id,
		Prompt:        "prompt " + id,
		Options:       []string{"a", "b", "c", "d"},
		CorrectOption: correct,
	}
}

func practice(answer, tolerance float64) Practice {
	return Practice{
		ID:            "p",
		Case:          CaseGLBBDistance,
		Variables:     map[string]float64{"v0": 2, "a": 1, "t": 2},
		CorrectAnswer: answer,
		Unit:          "m",
		Tolerance:     tolerance,
	}
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestNewAssignsID(t *testing.T) {
	a, err := New([]Question{mc("q1", 0)})
	require.NoError(t, err)
	b, err := New([]Question{mc("q1", 0)})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMultipleChoiceScoring(t *testing.T) {
	tests := []struct {
		name   string
		choice int
		want   int
	}{
		{"correct", 2, 1},
		{"wrong", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New([]Question{mc("q1", 2), mc("q2", 1)})
			require.NoError(t, err)

			require.True(t, s.SelectOption(tt.choice))
			require.True(t, s.Advance())
			assert.Equal(t, tt.want, s.Score())
			assert.Equal(t, 1, s.CurrentIndex())
		})
	}
}

func TestSelectOptionOnlyOnce(t *testing.T) {
	s, err := New([]Question{mc("q1", 2)})
	require.NoError(t, err)

	require.True(t, s.SelectOption(2))
	assert.False(t, s.SelectOption(2), "double submission is ignored")
	assert.Equal(t, 1, s.Score())

	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, 2, sel)
	assert.True(t, s.LastCorrect())
}

func TestAnswerKindMismatchIgnored(t *testing.T) {
	s, err := New([]Question{mc("q1", 0), practice(5, 0.5)})
	require.NoError(t, err)

	assert.False(t, s.SubmitNumeric(5))
	assert.False(t, s.Revealed())

	s.SelectOption(0)
	s.Advance()
	assert.False(t, s.SelectOption(0))
	assert.False(t, s.Revealed())
}

func TestAdvanceRequiresReveal(t *testing.T) {
	s, err := New([]Question{mc("q1", 0), mc("q2", 0)})
	require.NoError(t, err)

	assert.False(t, s.Advance())
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestToleranceBoundary(t *testing.T) {
	tests := []struct {
		value float64
		want  bool
	}{
		{5.5, true},
		{4.5, true},
		{5.51, false},
		{4.49, false},
		{5, true},
	}
	for _, tt := range tests {
		s, err := New([]Question{practice(5, 0.5)})
		require.NoError(t, err)

		require.True(t, s.SubmitNumeric(tt.value))
		assert.Equal(t, tt.want, s.LastCorrect(), "value %v", tt.value)
	}
}

func TestZeroToleranceIsExact(t *testing.T) {
	q := practice(9.8, 0)
	assert.True(t, q.Accepts(9.8))
	assert.False(t, q.Accepts(9.81))
}

func TestSubmitNumericIgnoresNonFinite(t *testing.T) {
	s, err := New([]Question{practice(5, 0.5)})
	require.NoError(t, err)

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.False(t, s.SubmitNumeric(v))
	}
	assert.False(t, s.Revealed())

	_, ok := s.Submitted()
	assert.False(t, ok)
}

func TestFinishEmitsOnce(t *testing.T) {
	var results []Result
	s, err := New(
		[]Question{mc("q1", 1), mc("q2", 3)},
		OnFinish(func(r Result) { results = append(results, r) }),
	)
	require.NoError(t, err)

	s.SelectOption(1)
	s.Advance()
	s.SelectOption(3)
	s.Advance()

	assert.True(t, s.Finished())
	assert.Equal(t, 2, s.Score())
	assert.Equal(t, []Result{{Score: 2, Total: 2}}, results)

	assert.False(t, s.Advance())
	assert.False(t, s.SelectOption(0))
	assert.Len(t, results, 1)
	assert.InDelta(t, 100.0, s.Percentage(), 1e-9)
}

func TestRetryResets(t *testing.T) {
	finishes := 0
	s, err := New([]Question{mc("q1", 0)}, OnFinish(func(Result) { finishes++ }))
	require.NoError(t, err)

	s.SelectOption(0)
	s.Advance()
	s.Retry()

	assert.False(t, s.Finished())
	assert.False(t, s.Revealed())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.CurrentIndex())

	s.SelectOption(1)
	s.Advance()
	assert.Equal(t, 2, finishes)
}

func TestPercentage(t *testing.T) {
	s, err := New([]Question{mc("q1", 0), mc("q2", 0), mc("q3", 0)})
	require.NoError(t, err)

	s.SelectOption(0)
	assert.InDelta(t, 100.0/3, s.Percentage(), 1e-9)
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12.5", 12.5, true},
		{"  -3 ", -3, true},
		{"12,5", 12.5, true},
		{"1e2", 100, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"1,000.5", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumeric(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseNumeric(%q)", tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9, "ParseNumeric(%q)", tt.in)
		}
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		pct   float64
		emoji string
	}{
		{100, "🏆"},
		{99.9, "🌟"},
		{80, "🌟"},
		{60, "👍"},
		{40, "📚"},
		{39.9, "💪"},
		{0, "💪"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.emoji, BandFor(tt.pct).Emoji, "BandFor(%v)", tt.pct)
	}
}

func TestCaseKindValid(t *testing.T) {
	assert.True(t, CaseProjectileRange.Valid())
	assert.False(t, CaseKind("orbit").Valid())
}
