package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"immolist/server/internal/source"
)

// Scheduler refreshes the catalog snapshot on a fixed interval. Its lifetime
// is tied to the process: Stop cancels the loop and waits for it to drain.
type Scheduler struct {
	manager  *source.Manager
	logger   *logrus.Logger
	interval time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewScheduler(manager *source.Manager, interval time.Duration, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		manager:  manager,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the refresh loop, running one refresh immediately.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	s.refresh()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.refresh()
		}
	}
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	s.logger.Debug("Starting scheduled catalog refresh")
	if err := s.manager.Refresh(ctx); err != nil {
		// no retry: the next tick (or a manual trigger) is the retry
		s.logger.WithError(err).Error("Scheduled catalog refresh failed")
		return
	}
	s.logger.Debug("Scheduled catalog refresh completed")
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
