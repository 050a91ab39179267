package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/sportdata/internal/domain/player"
	"github.com/riskibarqy/sportdata/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
)

const (
	defaultRefreshWorkers = 4
	defaultRefreshTimeout = 5 * time.Minute
)

// Refresher reloads one sport into the store.
type Refresher interface {
	Refresh(ctx context.Context, sport player.Sport) ([]player.Player, error)
}

type RefreshSchedulerConfig struct {
	Workers int
	Timeout time.Duration
}

// RefreshScheduler runs refreshes detached from the request that asked for
// them. Tasks inherit the scheduler's root context, never the caller's.
type RefreshScheduler struct {
	refresher Refresher
	pool      *ants.Pool
	logger    *logging.Logger
	timeout   time.Duration

	rootCtx context.Context
	cancel  context.CancelFunc
	tasks   sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	pending map[player.Sport]struct{}
}

func NewRefreshScheduler(refresher Refresher, cfg RefreshSchedulerConfig, logger *logging.Logger) (*RefreshScheduler, error) {
	if refresher == nil {
		return nil, fmt.Errorf("refresher is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("refresh_scheduler")

	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultRefreshWorkers
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRefreshTimeout
	}

	pool, err := ants.NewPool(workers,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p any) {
			logger.Error("refresh worker panicked outside task guard", "panic", p)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create refresh worker pool: %w", err)
	}

	rootCtx, cancel := context.WithCancel(context.Background())
	return &RefreshScheduler{
		refresher: refresher,
		pool:      pool,
		logger:    logger,
		timeout:   timeout,
		rootCtx:   rootCtx,
		cancel:    cancel,
		pending:   make(map[player.Sport]struct{}, len(player.AllSports)),
	}, nil
}

// Schedule queues a refresh for sport and returns immediately. It reports
// false when the task was dropped because the pool is saturated or closed.
// A sport already queued or running is not queued twice.
func (s *RefreshScheduler) Schedule(sport player.Sport) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Warn("refresh not scheduled, scheduler closed", "sport", sport)
		return false
	}
	if _, ok := s.pending[sport]; ok {
		s.mu.Unlock()
		return true
	}
	s.pending[sport] = struct{}{}
	// Add under mu so Close cannot reach tasks.Wait between the closed check and Add.
	s.tasks.Add(1)
	s.mu.Unlock()

	err := s.pool.Submit(func() {
		defer s.tasks.Done()
		defer s.release(sport)
		s.run(sport)
	})
	if err != nil {
		s.tasks.Done()
		s.release(sport)
		if errors.Is(err, ants.ErrPoolOverload) {
			s.logger.Warn("refresh dropped, worker pool saturated", "sport", sport, "running", s.pool.Running())
		} else {
			s.logger.Error("refresh submit failed", "sport", sport, "error", err)
		}
		return false
	}

	s.logger.Info("refresh scheduled", "sport", sport)
	return true
}

func (s *RefreshScheduler) run(sport player.Sport) {
	ctx, cancel := context.WithTimeout(s.rootCtx, s.timeout)
	defer cancel()

	var (
		players []player.Player
		err     error
		catcher panics.Catcher
	)
	catcher.Try(func() {
		players, err = s.refresher.Refresh(ctx, sport)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		s.logger.ErrorContext(ctx, "refresh panicked", "sport", sport, "error", recovered.AsError())
		return
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "refresh failed", "sport", sport, "stored", len(players), "error", err)
		return
	}
	if len(players) == 0 {
		s.logger.WarnContext(ctx, "refresh imported nothing", "sport", sport)
	}
}

func (s *RefreshScheduler) release(sport player.Sport) {
	s.mu.Lock()
	delete(s.pending, sport)
	s.mu.Unlock()
}

// Pending reports whether a refresh for sport is queued or running.
func (s *RefreshScheduler) Pending(sport player.Sport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[sport]
	return ok
}

// Wait blocks until every accepted task has finished.
func (s *RefreshScheduler) Wait() {
	s.tasks.Wait()
}

// Close stops accepting work, cancels running refreshes and waits for them
// until ctx expires.
func (s *RefreshScheduler) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.tasks.Wait()
		close(done)
	}()

	defer s.pool.Release()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for refresh tasks: %w", ctx.Err())
	}
}
