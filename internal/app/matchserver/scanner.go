package matchserver

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fpslabs/fps-backend/internal/shared/matchmaking"
)

// Scanner periodically sweeps every mode's queue for pairs the
// synchronous join path missed. One mode's failure never stops the sweep
// of the others.
type Scanner struct {
	service  *Service
	interval time.Duration
	logger   *zap.Logger

	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

func NewScanner(service *Service, interval time.Duration, logger *zap.Logger) *Scanner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Scanner{
		service:  service,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

func (s *Scanner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.scanLoop()
	s.logger.Info("scanner started", zap.Duration("interval", s.interval))
}

func (s *Scanner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopChan)
	s.wg.Wait()
	s.logger.Info("scanner stopped")
}

// Run drives the scanner under a context instead of Start/Stop, for use
// inside an errgroup.
func (s *Scanner) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.scanAll(ctx)
		}
	}
}

func (s *Scanner) scanLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.scanAll(context.Background())
		}
	}
}

func (s *Scanner) scanAll(ctx context.Context) {
	for _, mode := range matchmaking.Modes() {
		matched, err := s.service.ScanMode(ctx, mode)
		if err != nil {
			s.logger.Error("queue scan failed",
				zap.String("game_mode", string(mode)),
				zap.Error(err))
			continue
		}
		if matched > 0 {
			s.logger.Info("queue scan formed matches",
				zap.String("game_mode", string(mode)),
				zap.Int("matches", matched))
		}
	}
}
