package matchmaking

import (
	"errors"
	"testing"

	"github.com/fpslabs/fps-backend/internal/shared/mmr"
	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

func newTestRequest(t *testing.T, mode Mode, rating int) *Request {
	t.Helper()
	m, err := mmr.New(rating)
	if err != nil {
		t.Fatalf("invalid test rating %d - %v", rating, err)
	}
	return NewRequest(uuidstring.NewID(), mode, m)
}

func TestQueueEnqueue(t *testing.T) {
	t.Run("appends in arrival order", func(t *testing.T) {
		q := NewQueue(ModeSolo)
		first := newTestRequest(t, ModeSolo, 1500)
		second := newTestRequest(t, ModeSolo, 1600)

		if err := q.Enqueue(first); err != nil {
			t.Errorf("enqueue first request failed - %v", err)
		}
		if err := q.Enqueue(second); err != nil {
			t.Errorf("enqueue second request failed - %v", err)
		}

		requests := q.Requests()
		if len(requests) != 2 {
			t.Fatalf("expected 2 requests, got %d", len(requests))
		}
		if requests[0].RequestID != first.RequestID || requests[1].RequestID != second.RequestID {
			t.Errorf("requests are not in arrival order")
		}
	})

	t.Run("rejects a second request from the same player", func(t *testing.T) {
		q := NewQueue(ModeSolo)
		req := newTestRequest(t, ModeSolo, 1500)
		if err := q.Enqueue(req); err != nil {
			t.Errorf("first enqueue failed - %v", err)
		}

		dup := NewRequest(req.PlayerID, ModeSolo, req.PlayerMMR)
		if err := q.Enqueue(dup); !errors.Is(err, ErrDuplicatePlayer) {
			t.Errorf("expected ErrDuplicatePlayer, got %v", err)
		}
		if q.Len() != 1 {
			t.Errorf("queue length changed on rejected enqueue, got %d", q.Len())
		}
	})

	t.Run("rejects a mode mismatch", func(t *testing.T) {
		q := NewQueue(ModeSolo)
		req := newTestRequest(t, ModeDuo, 1500)
		if err := q.Enqueue(req); !errors.Is(err, ErrModeMismatch) {
			t.Errorf("expected ErrModeMismatch, got %v", err)
		}
	})
}

func TestQueueCancel(t *testing.T) {
	t.Run("removes the player's request", func(t *testing.T) {
		q := NewQueue(ModeSolo)
		req := newTestRequest(t, ModeSolo, 1500)
		q.Enqueue(req)

		if err := q.Cancel(req.PlayerID); err != nil {
			t.Errorf("cancel failed - %v", err)
		}
		if q.FindByPlayer(req.PlayerID) != nil {
			t.Errorf("request still present after cancel")
		}
	})

	t.Run("second cancel fails with ErrPlayerNotQueued", func(t *testing.T) {
		q := NewQueue(ModeSolo)
		req := newTestRequest(t, ModeSolo, 1500)
		q.Enqueue(req)

		if err := q.Cancel(req.PlayerID); err != nil {
			t.Errorf("first cancel failed - %v", err)
		}
		if err := q.Cancel(req.PlayerID); !errors.Is(err, ErrPlayerNotQueued) {
			t.Errorf("expected ErrPlayerNotQueued, got %v", err)
		}
	})

	t.Run("preserves order of the remaining requests", func(t *testing.T) {
		q := NewQueue(ModeSolo)
		first := newTestRequest(t, ModeSolo, 1500)
		second := newTestRequest(t, ModeSolo, 1600)
		third := newTestRequest(t, ModeSolo, 1700)
		q.Enqueue(first)
		q.Enqueue(second)
		q.Enqueue(third)

		if err := q.Cancel(second.PlayerID); err != nil {
			t.Errorf("cancel failed - %v", err)
		}

		requests := q.Requests()
		if len(requests) != 2 {
			t.Fatalf("expected 2 requests, got %d", len(requests))
		}
		if requests[0].RequestID != first.RequestID || requests[1].RequestID != third.RequestID {
			t.Errorf("removal reordered the remaining requests")
		}
	})
}

func TestQueueFindByPlayer(t *testing.T) {
	q := NewQueue(ModeSolo)
	req := newTestRequest(t, ModeSolo, 1500)
	q.Enqueue(req)

	t.Run("returns the live request", func(t *testing.T) {
		found := q.FindByPlayer(req.PlayerID)
		if found == nil || found.RequestID != req.RequestID {
			t.Errorf("expected request %s, got %v", req.RequestID, found)
		}
	})

	t.Run("returns nil for an unknown player", func(t *testing.T) {
		if found := q.FindByPlayer(uuidstring.NewID()); found != nil {
			t.Errorf("expected nil, got %v", found)
		}
	})

	t.Run("has no side effects", func(t *testing.T) {
		q.FindByPlayer(req.PlayerID)
		if q.Len() != 1 {
			t.Errorf("FindByPlayer changed queue length to %d", q.Len())
		}
	})
}

func TestModeTeamSize(t *testing.T) {
	// Team sizes are declared but only two-player pairing is implemented.
	tests := []struct {
		mode Mode
		size int
	}{
		{ModeSolo, 1},
		{ModeDuo, 2},
		{ModeSquad, 4},
	}
	for _, tc := range tests {
		if got := tc.mode.TeamSize(); got != tc.size {
			t.Errorf("TeamSize(%s) = %d, expected %d", tc.mode, got, tc.size)
		}
	}
}
