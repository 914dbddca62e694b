package session

// Status is a match session's lifecycle state. Transitions are monotonic:
// Paired -> InProgress -> Finished, with Cancelled reachable from Paired or
// InProgress. Finished and Cancelled are terminal.
type Status int

const (
	StatusPaired Status = iota + 1
	// StatusStarting is declared for forward compatibility with a separate
	// initialization phase. No transition enters or leaves it.
	StatusStarting
	StatusInProgress
	StatusFinished
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusPaired:
		return "paired"
	case StatusStarting:
		return "starting"
	case StatusInProgress:
		return "in_progress"
	case StatusFinished:
		return "finished"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusCancelled
}
