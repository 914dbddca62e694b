package mmr

import (
	"errors"
)

// DefaultValue is the rating assigned to players with no recorded history.
const DefaultValue = 1500

var ErrNegative = errors.New("mmr cannot be negative")

// MMR is a player's skill rating. Values are immutable; operations return
// new values and never produce anything below zero.
type MMR struct {
	value int
}

func New(value int) (MMR, error) {
	if value < 0 {
		return MMR{}, ErrNegative
	}
	return MMR{value: value}, nil
}

func Default() MMR {
	return MMR{value: DefaultValue}
}

func (m MMR) Value() int {
	return m.value
}

// Add returns the rating moved by delta, clamped at zero.
func (m MMR) Add(delta int) MMR {
	v := m.value + delta
	if v < 0 {
		v = 0
	}
	return MMR{value: v}
}

func AbsoluteDifference(a, b MMR) int {
	d := a.value - b.value
	if d < 0 {
		d = -d
	}
	return d
}
