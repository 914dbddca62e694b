package session

import (
	"errors"
	"testing"

	"github.com/fpslabs/fps-backend/internal/shared/matchmaking"
	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(uuidstring.NewID(), []uuidstring.ID{uuidstring.NewID(), uuidstring.NewID()}, matchmaking.ModeSolo)
	if err != nil {
		t.Fatalf("failed to create session - %v", err)
	}
	return s
}

func resultFor(t *testing.T, s *Session) *Result {
	t.Helper()
	winner := s.PlayerIDs[0]
	r, err := NewResult(s.MatchID, []PlayerResult{
		{PlayerID: s.PlayerIDs[0], IsWinner: true},
		{PlayerID: s.PlayerIDs[1], IsWinner: false},
	}, winner)
	if err != nil {
		t.Fatalf("failed to create result - %v", err)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Run("starts in the paired state", func(t *testing.T) {
		s := newTestSession(t)
		if s.Status() != StatusPaired {
			t.Errorf("expected paired, got %s", s.Status())
		}
		if _, ok := s.StartedAt(); ok {
			t.Errorf("start time recorded before Start")
		}
	})

	t.Run("rejects an empty match id", func(t *testing.T) {
		_, err := New("", []uuidstring.ID{uuidstring.NewID()}, matchmaking.ModeSolo)
		if !errors.Is(err, ErrEmptyMatchID) {
			t.Errorf("expected ErrEmptyMatchID, got %v", err)
		}
	})

	t.Run("rejects an empty player list", func(t *testing.T) {
		_, err := New(uuidstring.NewID(), nil, matchmaking.ModeSolo)
		if !errors.Is(err, ErrNoPlayers) {
			t.Errorf("expected ErrNoPlayers, got %v", err)
		}
	})
}

func TestLifecycle(t *testing.T) {
	t.Run("paired start end", func(t *testing.T) {
		s := newTestSession(t)

		if err := s.Start(); err != nil {
			t.Errorf("Start failed - %v", err)
		}
		if s.Status() != StatusInProgress {
			t.Errorf("expected in_progress, got %s", s.Status())
		}
		if _, ok := s.StartedAt(); !ok {
			t.Errorf("start time not recorded")
		}

		result := resultFor(t, s)
		if err := s.End(result); err != nil {
			t.Errorf("End failed - %v", err)
		}
		if s.Status() != StatusFinished {
			t.Errorf("expected finished, got %s", s.Status())
		}
		if _, ok := s.EndedAt(); !ok {
			t.Errorf("end time not recorded")
		}
		if s.Result() == nil || s.Result().ResultID != result.ResultID {
			t.Errorf("result not stored")
		}
	})

	t.Run("cancel from paired", func(t *testing.T) {
		s := newTestSession(t)
		if err := s.Cancel(); err != nil {
			t.Errorf("Cancel failed - %v", err)
		}
		if s.Status() != StatusCancelled {
			t.Errorf("expected cancelled, got %s", s.Status())
		}
	})

	t.Run("cancel from in progress", func(t *testing.T) {
		s := newTestSession(t)
		s.Start()
		if err := s.Cancel(); err != nil {
			t.Errorf("Cancel failed - %v", err)
		}
		if s.Status() != StatusCancelled {
			t.Errorf("expected cancelled, got %s", s.Status())
		}
	})
}

func TestInvalidTransitions(t *testing.T) {
	assertInvalid := func(t *testing.T, err error, current, attempted Status) {
		t.Helper()
		var ite *InvalidTransitionError
		if !errors.As(err, &ite) {
			t.Fatalf("expected InvalidTransitionError, got %v", err)
		}
		if ite.Current != current || ite.Attempted != attempted {
			t.Errorf("expected transition %s->%s rejected, got %s->%s", current, attempted, ite.Current, ite.Attempted)
		}
	}

	t.Run("end before start", func(t *testing.T) {
		s := newTestSession(t)
		err := s.End(resultFor(t, s))
		assertInvalid(t, err, StatusPaired, StatusFinished)
	})

	t.Run("start after finished", func(t *testing.T) {
		s := newTestSession(t)
		s.Start()
		s.End(resultFor(t, s))
		err := s.Start()
		assertInvalid(t, err, StatusFinished, StatusInProgress)
	})

	t.Run("cancel after finished", func(t *testing.T) {
		s := newTestSession(t)
		s.Start()
		s.End(resultFor(t, s))
		err := s.Cancel()
		assertInvalid(t, err, StatusFinished, StatusCancelled)
	})

	t.Run("start twice", func(t *testing.T) {
		s := newTestSession(t)
		s.Start()
		err := s.Start()
		assertInvalid(t, err, StatusInProgress, StatusInProgress)
	})

	t.Run("end after cancelled", func(t *testing.T) {
		s := newTestSession(t)
		s.Cancel()
		err := s.End(resultFor(t, s))
		assertInvalid(t, err, StatusCancelled, StatusFinished)
	})
}

func TestEndMatchIDMismatch(t *testing.T) {
	otherResult := func(t *testing.T, s *Session) *Result {
		t.Helper()
		r, err := NewResult(uuidstring.NewID(), []PlayerResult{
			{PlayerID: s.PlayerIDs[0], IsWinner: true},
		}, "")
		if err != nil {
			t.Fatalf("failed to create result - %v", err)
		}
		return r
	}

	t.Run("rejected while in progress", func(t *testing.T) {
		s := newTestSession(t)
		s.Start()
		if err := s.End(otherResult(t, s)); !errors.Is(err, ErrMatchIDMismatch) {
			t.Errorf("expected ErrMatchIDMismatch, got %v", err)
		}
		if s.Status() != StatusInProgress {
			t.Errorf("mismatched end changed the state to %s", s.Status())
		}
	})

	t.Run("rejected regardless of state", func(t *testing.T) {
		s := newTestSession(t)
		if err := s.End(otherResult(t, s)); !errors.Is(err, ErrMatchIDMismatch) {
			t.Errorf("expected ErrMatchIDMismatch before start, got %v", err)
		}
	})
}

func TestNewResult(t *testing.T) {
	t.Run("rejects an empty result list", func(t *testing.T) {
		_, err := NewResult(uuidstring.NewID(), nil, "")
		if !errors.Is(err, ErrNoResults) {
			t.Errorf("expected ErrNoResults, got %v", err)
		}
	})

	t.Run("rejects an empty player id", func(t *testing.T) {
		_, err := NewResult(uuidstring.NewID(), []PlayerResult{{PlayerID: ""}}, "")
		if !errors.Is(err, ErrEmptyPlayerID) {
			t.Errorf("expected ErrEmptyPlayerID, got %v", err)
		}
	})
}

func TestSnapshotRestore(t *testing.T) {
	s := newTestSession(t)
	s.Start()
	s.End(resultFor(t, s))

	restored := Restore(s.Snapshot())

	if restored.Status() != StatusFinished {
		t.Errorf("expected finished, got %s", restored.Status())
	}
	if restored.SessionID != s.SessionID || restored.MatchID != s.MatchID {
		t.Errorf("identity fields did not survive the round trip")
	}
	if restored.Result() == nil || restored.Result().ResultID != s.Result().ResultID {
		t.Errorf("result did not survive the round trip")
	}
	if err := restored.Start(); err == nil {
		t.Errorf("restored terminal session accepted Start")
	}
}
