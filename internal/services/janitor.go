package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpiredSessionCleaner evicts idle sessions
type ExpiredSessionCleaner interface {
	// Method CleanupExpired evicts sessions idle at "now" for longer than their TTL and returns how many were evicted.
	CleanupExpired(now time.Time) int
}

// Janitor periodically evicts idle sessions
type Janitor struct {
	cleaner  ExpiredSessionCleaner
	interval time.Duration
	logger   *zap.Logger
	cron     *cron.Cron
}

// NewJanitor creates a new janitor sweeping every interval.
// Intervals are truncated to whole seconds, with a minimum of one second.
func NewJanitor(cleaner ExpiredSessionCleaner, interval time.Duration, logger *zap.Logger) *Janitor {
	cl := cronLogger{logger: logger.Sugar()}
	return &Janitor{
		cleaner:  cleaner,
		interval: interval,
		logger:   logger,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

// Start schedules the sweep and starts the janitor
func (j *Janitor) Start() {
	j.cron.Schedule(cron.Every(j.interval), cron.FuncJob(j.Sweep))
	j.cron.Start()
	j.logger.Info("Session janitor started", zap.Duration("interval", j.interval))
}

// Stop stops the janitor and waits for the running sweep to finish
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Session janitor stopped")
}

// Sweep evicts the sessions that are idle now
func (j *Janitor) Sweep() {
	evicted := j.cleaner.CleanupExpired(time.Now())
	j.logger.Debug("Session sweep finished", zap.Int("evicted", evicted))
}

// cronLogger reports scheduler events through zap. Routine events are logged at debug level.
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
