package matchmaking

import "errors"

var (
	ErrDuplicatePlayer = errors.New("player already has a request in this queue")
	ErrPlayerNotQueued = errors.New("player has no request in this queue")
	ErrModeMismatch    = errors.New("request game mode does not match the queue")
	ErrInvalidMode     = errors.New("unknown game mode")
)
