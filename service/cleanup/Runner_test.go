package cleanup

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLockService struct {
	mu         sync.Mutex
	held       bool
	lockLostCh chan service.LockLostEvent
	chClosed   bool
	released   []string
}

func (f *fakeLockService) AcquireLock(ctx context.Context, lockName string, options service.LockOptions) (bool, <-chan service.LockLostEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held {
		return false, nil, nil
	}
	f.held = true
	if options.NotifyOnLoss {
		f.lockLostCh = make(chan service.LockLostEvent, 1)
	}
	return true, f.lockLostCh, nil
}

func (f *fakeLockService) ReleaseLock(ctx context.Context, lockName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.held = false
	f.released = append(f.released, lockName)
	if f.lockLostCh != nil && !f.chClosed {
		close(f.lockLostCh)
		f.chClosed = true
	}
	return nil
}

func (f *fakeLockService) loseLock(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lockLostCh <- service.LockLostEvent{LockName: sharedLockName, InstanceId: "instance-1", Reason: reason}
	close(f.lockLostCh)
	f.chClosed = true
}

type blockingCleanupService struct {
	started chan struct{}
	ctxErr  error
}

func (b *blockingCleanupService) RunUserCleanup(ctx context.Context) error {
	close(b.started)
	<-ctx.Done()
	b.ctxErr = ctx.Err()
	return ctx.Err()
}

type noopCleanupService struct {
	runs int
}

func (n *noopCleanupService) RunUserCleanup(ctx context.Context) error {
	n.runs++
	return nil
}

func testJobConfig() jobConfig {
	return jobConfig{
		jobType:    userCleanup,
		instanceId: "instance-1",
		timeout:    time.Minute,
	}
}

func TestRunnerCancelsRunWhenLockIsLost(t *testing.T) {
	lockService := &fakeLockService{}
	cleanupService := &blockingCleanupService{started: make(chan struct{})}
	runner := NewJobRunner(lockService, cleanupService, testJobConfig())

	done := make(chan struct{})
	go func() {
		runner.Run()
		close(done)
	}()

	<-cleanupService.started
	lockService.loseLock("lease refresh failed")

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("run was not canceled after lock loss")
	}
	assert.Equal(t, context.Canceled, cleanupService.ctxErr)
}

func TestRunnerSkipsWhenLockIsHeld(t *testing.T) {
	lockService := &fakeLockService{held: true}
	cleanupService := &noopCleanupService{}
	runner := NewJobRunner(lockService, cleanupService, testJobConfig())

	runner.Run()

	assert.Equal(t, 0, cleanupService.runs)
	assert.Empty(t, lockService.released)
}

func TestRunnerReleasesLockAfterRun(t *testing.T) {
	lockService := &fakeLockService{}
	cleanupService := &noopCleanupService{}
	runner := NewJobRunner(lockService, cleanupService, testJobConfig())

	runner.Run()

	require.Equal(t, 1, cleanupService.runs)
	assert.Equal(t, []string{sharedLockName}, lockService.released)
}
