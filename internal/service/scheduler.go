package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runner is one complete, independent announcement run.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler triggers a Runner on a cron schedule. Runs never overlap: a tick that fires
// while the previous run is still retrying is skipped.
type Scheduler struct {
	runner   Runner
	schedule cron.Schedule
	spec     string
	location *time.Location
	logger   *zap.Logger
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

func NewScheduler(runner Runner, spec string, location *time.Location, logger *zap.Logger) (*Scheduler, error) {
	if runner == nil {
		return nil, fmt.Errorf("runner is required")
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("invalid cron schedule: cannot be empty")
	}
	schedule, err := cronParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		runner:   runner,
		schedule: schedule,
		spec:     spec,
		location: location,
		logger:   logger,
	}, nil
}

// Next returns the first activation strictly after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t.In(s.location))
}

// Start blocks until ctx is cancelled, then waits for an in-flight run to finish.
func (s *Scheduler) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cronLogger := &cronLogAdapter{logger: s.logger}
	c := cron.New(
		cron.WithLocation(s.location),
		cron.WithParser(cronParser),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	c.Schedule(s.schedule, cron.FuncJob(func() { s.runOnce(ctx) }))

	c.Start()
	s.logger.Info("scheduler started",
		zap.String("schedule", s.spec),
		zap.String("timezone", s.location.String()),
		zap.Time("nextRun", s.Next(time.Now())),
	)

	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("scheduler stopped")

	return nil
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	startTime := time.Now()
	if err := s.runner.Run(ctx); err != nil {
		if ctx.Err() != nil {
			s.logger.Info("album announcement interrupted by shutdown", zap.Error(err))
			return
		}
		s.logger.Error("album announcement failed",
			zap.Duration("duration", time.Since(startTime)),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("album announcement completed",
		zap.Duration("duration", time.Since(startTime)),
		zap.Time("nextRun", s.Next(time.Now())),
	)
}

// cronLogAdapter routes robfig/cron's logr-style calls into zap.
type cronLogAdapter struct {
	logger *zap.Logger
}

func (a *cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Sugar().Debugw("cron: "+msg, keysAndValues...)
}

func (a *cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Sugar().With(zap.Error(err)).Errorw("cron: "+msg, keysAndValues...)
}
