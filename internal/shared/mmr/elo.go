package mmr

import (
	"errors"
	"fmt"
	"math"
)

// DefaultKFactor controls how far a single result moves a rating.
const DefaultKFactor = 32

var ErrInvalidRatingInput = errors.New("invalid rating input")

// Calculator produces a new rating from a match outcome. Only Elo is
// implemented; the interface leaves room for Glicko or TrueSkill later.
type Calculator interface {
	NewRating(current, opponentAverage MMR, actualScore float64, kFactor int) (MMR, error)
}

// EloCalculator implements the standard Elo update:
//
//	expected = 1 / (1 + 10^((opponentAverage - current) / 400))
//	new      = current + round(k * (actual - expected))
type EloCalculator struct{}

// NewRating computes the updated rating. actualScore is 1.0 for a win,
// 0.0 for a loss, 0.5 for a draw. The result never goes below zero.
func (EloCalculator) NewRating(current, opponentAverage MMR, actualScore float64, kFactor int) (MMR, error) {
	if actualScore < 0.0 || actualScore > 1.0 {
		return MMR{}, fmt.Errorf("%w: actual score %v must be between 0.0 and 1.0", ErrInvalidRatingInput, actualScore)
	}
	if kFactor <= 0 {
		return MMR{}, fmt.Errorf("%w: k factor %d must be greater than 0", ErrInvalidRatingInput, kFactor)
	}

	ratingDifference := float64(opponentAverage.Value() - current.Value())
	expected := 1.0 / (1.0 + math.Pow(10, ratingDifference/400.0))
	delta := int(math.Round(float64(kFactor) * (actualScore - expected)))

	return current.Add(delta), nil
}
