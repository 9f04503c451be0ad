package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/you/librarysvc/domain"
)

// OTPPurgeJob periodically deletes expired one-time codes
type OTPPurgeJob struct {
	otpSvc  domain.OTPService
	purged  prometheus.Counter
	logger  logrus.FieldLogger
	timeout time.Duration
}

// NewOTPPurgeJob creates the purge job. purged may be nil.
func NewOTPPurgeJob(otpSvc domain.OTPService, purged prometheus.Counter, logger logrus.FieldLogger) *OTPPurgeJob {
	return &OTPPurgeJob{
		otpSvc:  otpSvc,
		purged:  purged,
		logger:  logger.WithField("job", "otp_purge"),
		timeout: 30 * time.Second,
	}
}

// Run performs a single purge pass
func (j *OTPPurgeJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	n, err := j.otpSvc.PurgeExpired(ctx)
	if err != nil {
		j.logger.WithError(err).Error("otp purge failed")
		return
	}
	if j.purged != nil {
		j.purged.Add(float64(n))
	}
	j.logger.WithField("deleted", n).Debug("otp purge completed")
}

// Scheduler runs background jobs on cron schedules
type Scheduler struct {
	cron   *cron.Cron
	logger logrus.FieldLogger
}

// NewScheduler creates an idle scheduler; jobs run in UTC
func NewScheduler(logger logrus.FieldLogger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.Recover(cronLogger{logger}))),
		logger: logger,
	}
}

// Add registers job under spec, which accepts standard cron syntax and descriptors such as "@every 1h"
func (s *Scheduler) Add(spec string, job cron.Job) error {
	if _, err := s.cron.AddJob(spec, job); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.WithField("jobs", len(s.cron.Entries())).Info("scheduler started")
}

// Stop halts the scheduler and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
	}
}

// cronLogger adapts logrus to cron.Logger
type cronLogger struct {
	logger logrus.FieldLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(kvFields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(kvFields(keysAndValues)).WithError(err).Error(msg)
}

func kvFields(kv []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}
