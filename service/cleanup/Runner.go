package cleanup

import (
	"context"
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/metrics"
	"github.com/Tayttopaikka/tayttopaikka-backend/service"
	"github.com/Tayttopaikka/tayttopaikka-backend/service/cleanup/logger"
	"github.com/google/uuid"
)

const (
	sharedLockName       = "user_cleanup_job_lock"
	lockLeaseSeconds     = 120
	lockHeartbeatSeconds = 30
)

// JobRunner is the cron entry point for a cleanup job. It guards each run
// with a database lease so that only one backend instance processes users,
// even when several replicas share the same schedule.
type JobRunner struct {
	lockService    service.LockService
	cleanupService UserCleanupService
	config         jobConfig
}

func NewJobRunner(lockService service.LockService, cleanupService UserCleanupService, config jobConfig) *JobRunner {
	return &JobRunner{
		lockService:    lockService,
		cleanupService: cleanupService,
		config:         config,
	}
}

func (r *JobRunner) Run() {
	jobId := uuid.New().String()

	jobCtx, jobCancel := context.WithTimeout(context.Background(), r.config.timeout)
	defer jobCancel()
	jobCtx = context.WithValue(jobCtx, "jobType", r.config.jobType)
	jobCtx = context.WithValue(jobCtx, "jobId", jobId)

	defer func() {
		if err := recover(); err != nil {
			logger.Errorf(jobCtx, "cleanup job failed with panic: %v", err)
			metrics.CleanupRunFailures.Inc()
		}
	}()

	if !r.acquireLock(jobCtx, jobCancel) {
		return
	}
	defer r.releaseLock(jobCtx)

	startedAt := time.Now()
	logger.Infof(jobCtx, "Starting user cleanup job on instance %s", r.config.instanceId)

	err := r.cleanupService.RunUserCleanup(jobCtx)

	status := statusComplete
	if err != nil {
		status = statusError
		if jobCtx.Err() == context.DeadlineExceeded {
			status = statusTimeout
		}
		logger.Errorf(jobCtx, "User cleanup run failed: %v", err)
		metrics.CleanupRunFailures.Inc()
	}
	logger.Infof(jobCtx, "job finished with status '%s' in %v", status, time.Since(startedAt).Round(time.Millisecond))
}

// acquireLock takes the shared lease and subscribes to its loss. The lease
// is shorter than a run and kept alive by the lock service heartbeat; if
// the heartbeat fails the run is canceled so two instances can never
// process the same candidates.
func (r *JobRunner) acquireLock(ctx context.Context, cancel context.CancelFunc) bool {
	lockOptions := service.LockOptions{
		LeaseSeconds:             lockLeaseSeconds,
		HeartbeatIntervalSeconds: lockHeartbeatSeconds,
		NotifyOnLoss:             true,
	}

	acquired, lockLostCh, err := r.lockService.AcquireLock(ctx, sharedLockName, lockOptions)
	if err != nil {
		logger.Errorf(ctx, "Failed to acquire lock: %v", err)
		return false
	}
	if !acquired {
		logger.Info(ctx, "job skipped - lock is held by another instance")
		return false
	}

	if lockLostCh != nil {
		go func() {
			event, ok := <-lockLostCh
			if !ok {
				return
			}
			logger.Warnf(ctx, "Lock %s lost: %s. Canceling cleanup run", event.LockName, event.Reason)
			cancel()
		}()
	}
	return true
}

func (r *JobRunner) releaseLock(ctx context.Context) {
	releaseCtx := ctx
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		releaseCtx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
	}
	if err := r.lockService.ReleaseLock(releaseCtx, sharedLockName); err != nil {
		logger.Errorf(ctx, "Failed to release lock: %v", err)
	}
}
