package jobs

import (
	"fmt"
	"log/slog"
)

// job is a scheduled background task.
type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs   []namedJob
	logger *slog.Logger
}

type namedJob struct {
	name string
	job  job
}

// NewJobManager creates a job manager. A nil relay handler means order
// events are not published, e.g. when no Kafka host is configured.
func NewJobManager(relayHandler RelayHandler, batchSize int, logger *slog.Logger) *JobManager {
	jm := &JobManager{logger: logger}
	if relayHandler != nil {
		jm.jobs = append(jm.jobs, namedJob{
			name: "outbox relay",
			job:  NewOutboxRelayJob(relayHandler, batchSize, logger),
		})
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			// Stop already started jobs if this one fails
			for _, started := range jm.jobs[:i] {
				started.job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for _, j := range jm.jobs {
		j.job.Stop()
	}
}

// Len reports how many jobs are managed.
func (jm *JobManager) Len() int {
	return len(jm.jobs)
}
