package matchserver

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fpslabs/fps-backend/internal/shared/matchmaking"
	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

func TestScannerPairsWaitingPlayers(t *testing.T) {
	env := newTestEnv(t)

	err := env.queues.WithQueue(t.Context(), matchmaking.ModeSolo, func(q *matchmaking.Queue) error {
		for _, value := range []int{1500, 1530} {
			if err := q.Enqueue(matchmaking.NewRequest(uuidstring.NewID(), matchmaking.ModeSolo, rating(t, value))); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to seed queue - %v", err)
	}

	scanner := NewScanner(env.service, 5*time.Millisecond, zap.NewNop())
	scanner.Start()
	defer scanner.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(env.notifier.matchFoundEvents()) > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("scanner never paired the waiting players")
}

func TestScannerStopIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	scanner := NewScanner(env.service, 5*time.Millisecond, zap.NewNop())

	scanner.Start()
	scanner.Start()
	scanner.Stop()
	scanner.Stop()
}
