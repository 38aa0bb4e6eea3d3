package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/webhook-scheduler/webhook"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

/* Scheduler fires the webhook use case at fixed wall-clock times
 * Jobs run on cron's goroutines, independently of manual triggers
 */

// Cron specs with a leading seconds field
const (
	PrimarySpec   = "0 0 9,13,18 * * *"
	SecondarySpec = "0 0 9 * * *"
)

var parser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

type Config struct {
	Enabled       bool
	Location      *time.Location // defaults to time.Local
	PrimarySpec   string         // defaults to PrimarySpec
	SecondarySpec string         // defaults to SecondarySpec
}

// Entry describes one scheduled job
type Entry struct {
	Name string
	Spec string
	Next time.Time
}

type Scheduler struct {
	cron     *cron.Cron
	service  webhook.UseCase
	enabled  bool
	location *time.Location
	entries  []scheduled
	logger   zerolog.Logger
}

type scheduled struct {
	name     string
	spec     string
	schedule cron.Schedule
}

// New registers the primary and secondary jobs without starting them
func New(service webhook.UseCase, cfg Config, logger zerolog.Logger) (*Scheduler, error) {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.PrimarySpec == "" {
		cfg.PrimarySpec = PrimarySpec
	}
	if cfg.SecondarySpec == "" {
		cfg.SecondarySpec = SecondarySpec
	}

	cronLogger := cronLogger{logger: logger}
	s := &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger)),
		),
		service:  service,
		enabled:  cfg.Enabled,
		location: cfg.Location,
		logger:   logger,
	}

	if err := s.add(webhook.PrimaryTarget, cfg.PrimarySpec, s.runPrimary); err != nil {
		return nil, err
	}
	if err := s.add(webhook.SecondaryTarget, cfg.SecondarySpec, s.runSecondary); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) add(name, spec string, job func()) error {
	schedule, err := parser.Parse(spec)
	if err != nil {
		return fmt.Errorf("parsing %s schedule %q: %w", name, spec, err)
	}
	s.cron.Schedule(schedule, cron.FuncJob(job))
	s.entries = append(s.entries, scheduled{name: name, spec: spec, schedule: schedule})
	return nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.logger.Info().Bool("enabled", s.enabled).Msg("starting scheduler")
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for scheduled jobs: %w", ctx.Err())
	}
}

// Enabled reports whether scheduled runs call the webhooks
func (s *Scheduler) Enabled() bool {
	return s.enabled
}

// Entries returns the jobs with their next fire time
func (s *Scheduler) Entries() []Entry {
	now := time.Now().In(s.location)
	entries := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, Entry{
			Name: e.name,
			Spec: e.spec,
			Next: e.schedule.Next(now),
		})
	}
	return entries
}

func (s *Scheduler) runPrimary() {
	if !s.enabled {
		s.logger.Info().Msg("scheduler is disabled, skipping scheduled primary call")
		return
	}

	s.logger.Info().Msg("scheduled primary call started")
	response := s.service.TriggerPrimary(context.Background())
	s.logger.Info().Int("status_code", response.StatusCode).Msg("scheduled primary call completed")
}

func (s *Scheduler) runSecondary() {
	if !s.enabled {
		s.logger.Info().Msg("scheduler is disabled, skipping scheduled secondary call")
		return
	}

	if _, secondary := s.service.Targets(); !secondary.Configured() {
		s.logger.Warn().Msg("secondary webhook URL is not configured, skipping scheduled secondary call")
		return
	}

	s.logger.Info().Msg("scheduled secondary call started")
	response := s.service.TriggerSecondary(context.Background())
	s.logger.Info().Int("status_code", response.StatusCode).Msg("scheduled secondary call completed")
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
