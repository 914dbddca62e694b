package matchmaking

import (
	"github.com/fpslabs/fps-backend/internal/shared/mmr"
)

// Tolerance is the maximum rating gap, inclusive, between two requests the
// engine will pair.
const Tolerance = 100

// requiredPlayers is fixed at two. Larger team sizes are declared on Mode
// but not implemented by the pairing algorithm.
const requiredPlayers = 2

// Engine pairs queued requests by rating proximity. Anchoring on the oldest
// request keeps the longest-waiting player first in line; the tolerance
// window trades match quality for latency.
type Engine struct{}

// TryMatch scans the queue once, in arrival order. The oldest request is
// the anchor; the first later request within Tolerance of the anchor's
// rating completes the pair. Both are removed from the queue and returned
// in a Match, anchor first. When no pair exists the queue is left exactly
// as it was, anchor included.
func (Engine) TryMatch(q *Queue) *Match {
	requests := q.Requests()
	if len(requests) < requiredPlayers {
		return nil
	}

	anchor := requests[0]
	for _, candidate := range requests[1:] {
		if mmr.AbsoluteDifference(candidate.PlayerMMR, anchor.PlayerMMR) > Tolerance {
			continue
		}
		// Removal by player id keeps every other request in place.
		q.Cancel(anchor.PlayerID)
		q.Cancel(candidate.PlayerID)
		return NewMatch(q.GameMode, []*Request{anchor, candidate})
	}
	return nil
}
