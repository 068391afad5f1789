package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/madhava-poojari/mentorship-api/internal/metrics"
	"github.com/robfig/cron/v3"
)

// TokenPurger removes refresh tokens that are expired or revoked.
type TokenPurger interface {
	DeleteExpiredTokens(ctx context.Context) (int64, error)
}

const purgeTimeout = 30 * time.Second

// Scheduler runs background maintenance on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	purger TokenPurger
	log    *slog.Logger
}

// NewScheduler registers the refresh token purge on schedule, a standard
// five-field cron expression or a descriptor such as "@hourly".
func NewScheduler(schedule string, purger TokenPurger, log *slog.Logger) (*Scheduler, error) {
	cl := cronLogger{log: log}
	s := &Scheduler{
		cron:   cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		purger: purger,
		log:    log,
	}
	if _, err := s.cron.AddFunc(schedule, s.PurgeTokens); err != nil {
		return nil, fmt.Errorf("token purge schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out")
	}
}

func (s *Scheduler) PurgeTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	n, err := s.purger.DeleteExpiredTokens(ctx)
	if err != nil {
		s.log.Error("refresh token purge failed", "error", err)
		return
	}
	metrics.TokensPurged(n)
	s.log.Info("refresh tokens purged", "deleted", n)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
