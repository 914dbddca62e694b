package matchmaking

// Mode is a matchmaking game mode.
type Mode string

const (
	ModeSolo  Mode = "solo"
	ModeDuo   Mode = "duo"
	ModeSquad Mode = "squad"
)

// Modes returns every declared mode, in a fixed order.
func Modes() []Mode {
	return []Mode{ModeSolo, ModeDuo, ModeSquad}
}

func (m Mode) Valid() bool {
	switch m {
	case ModeSolo, ModeDuo, ModeSquad:
		return true
	}
	return false
}

// TeamSize is the declared team size per mode. Only solo is wired into the
// pairing engine today; duo and squad are declared for clients but the
// engine still pairs exactly two players.
func (m Mode) TeamSize() int {
	switch m {
	case ModeDuo:
		return 2
	case ModeSquad:
		return 4
	default:
		return 1
	}
}
