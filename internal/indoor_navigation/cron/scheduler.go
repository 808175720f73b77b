package cronjob

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/api/http/middleware"
	"github.com/robfig/cron/v3"
)

// DefaultSweepSpec runs the closure sweep every minute, on the minute.
const DefaultSweepSpec = "0 * * * * *"

// Sweeper deactivates closures whose scheduled end has passed.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// Scheduler runs the closure expiry sweep on a cron spec with a seconds
// field.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	timeout time.Duration
}

func NewScheduler(sweeper Sweeper) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		sweeper: sweeper,
		timeout: 30 * time.Second,
	}
}

// Start registers the sweep and starts the cron loop in the background.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return fmt.Errorf("schedule closure sweep %q: %w", spec, err)
	}

	log.Printf("[info] operation=cron.start job=closure_sweep spec=%q", spec)
	s.cron.Start()
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce performs a single sweep.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	ctx = middleware.WithRequestID(ctx, "cron-"+time.Now().UTC().Format("20060102T150405"))

	n, err := s.sweeper.SweepExpired(ctx)
	if err != nil {
		log.Printf("[error] request_id=%s operation=cron.closure_sweep swept=%d error=%v",
			middleware.GetRequestID(ctx), n, err)
		return
	}
	if n > 0 {
		log.Printf("[info] request_id=%s operation=cron.closure_sweep swept=%d", middleware.GetRequestID(ctx), n)
	}
}
