package mmr

import (
	"errors"
	"testing"
)

func TestEloCalculatorNewRating(t *testing.T) {
	calc := EloCalculator{}

	tests := []struct {
		name     string
		current  int
		opponent int
		score    float64
		kFactor  int
		expected int
	}{
		{
			name:     "equal ratings win moves up by half k",
			current:  1500,
			opponent: 1500,
			score:    1.0,
			kFactor:  32,
			expected: 1516,
		},
		{
			name:     "equal ratings loss moves down by half k",
			current:  1500,
			opponent: 1500,
			score:    0.0,
			kFactor:  32,
			expected: 1484,
		},
		{
			name:     "equal ratings draw is unchanged",
			current:  1500,
			opponent: 1500,
			score:    0.5,
			kFactor:  32,
			expected: 1500,
		},
		{
			name:     "underdog win gains more",
			current:  1400,
			opponent: 1600,
			score:    1.0,
			kFactor:  32,
			expected: 1424,
		},
		{
			name:     "favorite win gains less",
			current:  1600,
			opponent: 1400,
			score:    1.0,
			kFactor:  32,
			expected: 1608,
		},
		{
			name:     "loss near zero clamps at zero",
			current:  10,
			opponent: 10,
			score:    0.0,
			kFactor:  32,
			expected: 0,
		},
		{
			name:     "larger k factor scales the delta",
			current:  1500,
			opponent: 1500,
			score:    1.0,
			kFactor:  40,
			expected: 1520,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			current, _ := New(tc.current)
			opponent, _ := New(tc.opponent)

			got, err := calc.NewRating(current, opponent, tc.score, tc.kFactor)
			if err != nil {
				t.Errorf("NewRating returned an error - %v", err)
			}
			if got.Value() != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, got.Value())
			}
		})
	}
}

func TestEloCalculatorRejectsInvalidInput(t *testing.T) {
	calc := EloCalculator{}
	current, _ := New(1500)
	opponent, _ := New(1500)

	t.Run("score below range", func(t *testing.T) {
		_, err := calc.NewRating(current, opponent, -0.1, DefaultKFactor)
		if !errors.Is(err, ErrInvalidRatingInput) {
			t.Errorf("expected ErrInvalidRatingInput, got %v", err)
		}
	})

	t.Run("score above range", func(t *testing.T) {
		_, err := calc.NewRating(current, opponent, 1.1, DefaultKFactor)
		if !errors.Is(err, ErrInvalidRatingInput) {
			t.Errorf("expected ErrInvalidRatingInput, got %v", err)
		}
	})

	t.Run("zero k factor", func(t *testing.T) {
		_, err := calc.NewRating(current, opponent, 1.0, 0)
		if !errors.Is(err, ErrInvalidRatingInput) {
			t.Errorf("expected ErrInvalidRatingInput, got %v", err)
		}
	})

	t.Run("negative k factor", func(t *testing.T) {
		_, err := calc.NewRating(current, opponent, 1.0, -8)
		if !errors.Is(err, ErrInvalidRatingInput) {
			t.Errorf("expected ErrInvalidRatingInput, got %v", err)
		}
	})
}
