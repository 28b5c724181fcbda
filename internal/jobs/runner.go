package jobs

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

// Job is a unit of background work.
type Job interface {
	Run()
}

// CronJob is a Job with a cron schedule.
type CronJob interface {
	Schedule() string
	Job
}

// Runner schedules cron jobs and guards against a slow run overlapping
// the next tick of the same job.
type Runner struct {
	cron    *cron.Cron
	jobs    []CronJob
	running mapset.Set[CronJob]
	mu      sync.Mutex
}

func NewRunner(jobs ...CronJob) *Runner {
	return &Runner{
		cron:    cron.New(),
		jobs:    jobs,
		running: mapset.NewSet[CronJob](),
	}
}

// Start registers every job with the cron scheduler and starts it.
func (r *Runner) Start() error {
	for _, job := range r.jobs {
		job := job
		err := r.cron.AddFunc(job.Schedule(), func() {
			r.mu.Lock()
			if r.running.Contains(job) {
				r.mu.Unlock()
				logrus.Warn("job still running, skipping this tick")
				return
			}
			r.running.Add(job)
			r.mu.Unlock()

			defer func() {
				r.mu.Lock()
				defer r.mu.Unlock()
				r.running.Remove(job)
			}()

			job.Run()
		})
		if err != nil {
			return err
		}
	}

	r.cron.Start()
	return nil
}

// Stop halts the scheduler. Jobs already running finish on their own.
func (r *Runner) Stop() {
	r.cron.Stop()
}
