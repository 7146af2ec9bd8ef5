package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/planhub-dev/planhub/internal/notifications"
)

// Scheduler runs the deadline reminder scan on a fixed interval. Each run
// re-notifies projects still inside the lead window, so the interval doubles
// as the reminder repeat cadence.
type Scheduler struct {
	scanner  *notifications.Scanner
	interval time.Duration
	log      *logrus.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(scanner *notifications.Scanner, interval time.Duration, log *logrus.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		scanner:  scanner,
		interval: interval,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start begins scheduling. A non-positive interval disables the scheduler;
// scans can still be triggered through the API.
func (s *Scheduler) Start() {
	if s.interval <= 0 {
		s.log.Info("Reminder scheduler disabled (interval is zero)")
		close(s.done)
		return
	}

	s.log.WithField("interval", s.interval).Info("Starting reminder scheduler")

	go s.run()
}

// Stop cancels the scheduling loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.done
	s.log.Info("Reminder scheduler stopped")
}

func (s *Scheduler) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.scan()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.scan()
		}
	}
}

func (s *Scheduler) scan() {
	start := time.Now()

	result, err := s.scanner.Run()

	if err != nil {
		s.log.WithError(err).Error("Scheduled reminder scan failed")
		return
	}

	s.log.WithFields(logrus.Fields{
		"sent":     result.SentCount,
		"failed":   result.FailedCount,
		"duration": time.Since(start),
	}).Info("Reminder scan completed")
}
