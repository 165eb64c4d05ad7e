package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/entity"
	"github.com/Tayttopaikka/tayttopaikka-backend/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLockRepo struct {
	mu           sync.Mutex
	holder       string
	refreshCount int
	failRefresh  bool
	released     []string
}

func (f *fakeLockRepo) TryAcquireLock(ctx context.Context, lockName string, instanceId string, leaseSeconds int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.holder != "" && f.holder != instanceId {
		return false, nil
	}
	f.holder = instanceId
	return true, nil
}

func (f *fakeLockRepo) RefreshLock(ctx context.Context, lockName string, instanceId string, leaseSeconds int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRefresh || f.holder != instanceId {
		return repository.ErrLockAlreadyAcquired
	}
	f.refreshCount++
	return nil
}

func (f *fakeLockRepo) ReleaseLock(ctx context.Context, lockName string, instanceId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.holder = ""
	f.released = append(f.released, lockName)
	return nil
}

func (f *fakeLockRepo) GetLockInfo(ctx context.Context, lockName string) (*entity.LockEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.holder == "" {
		return nil, repository.ErrLockNotFound
	}
	return &entity.LockEntity{Name: lockName, InstanceId: f.holder}, nil
}

func (f *fakeLockRepo) getRefreshCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshCount
}

func (f *fakeLockRepo) setFailRefresh(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failRefresh = fail
}

func TestHeartbeatKeepsLeaseRefreshed(t *testing.T) {
	repo := &fakeLockRepo{}
	svc := NewLockService(repo, "instance-1")

	acquired, _, err := svc.AcquireLock(context.Background(), "job_lock", LockOptions{
		LeaseSeconds:             3,
		HeartbeatIntervalSeconds: 1,
	})
	require.NoError(t, err)
	require.True(t, acquired)
	defer svc.ReleaseLock(context.Background(), "job_lock")

	assert.Eventually(t, func() bool {
		return repo.getRefreshCount() >= 1
	}, 3*time.Second, 50*time.Millisecond, "lease was never refreshed")
}

func TestLostLeaseIsReportedToHolder(t *testing.T) {
	repo := &fakeLockRepo{}
	svc := NewLockService(repo, "instance-1")

	acquired, lockLostCh, err := svc.AcquireLock(context.Background(), "job_lock", LockOptions{
		LeaseSeconds:             3,
		HeartbeatIntervalSeconds: 1,
		NotifyOnLoss:             true,
	})
	require.NoError(t, err)
	require.True(t, acquired)
	require.NotNil(t, lockLostCh)

	repo.setFailRefresh(true)

	select {
	case event, ok := <-lockLostCh:
		require.True(t, ok)
		assert.Equal(t, "job_lock", event.LockName)
		assert.Equal(t, "instance-1", event.InstanceId)
	case <-time.After(3 * time.Second):
		t.Fatal("lock loss was never reported")
	}
}

func TestReleaseStopsHeartbeatAndClosesChannel(t *testing.T) {
	repo := &fakeLockRepo{}
	svc := NewLockService(repo, "instance-1")

	acquired, lockLostCh, err := svc.AcquireLock(context.Background(), "job_lock", LockOptions{
		LeaseSeconds:             3,
		HeartbeatIntervalSeconds: 1,
		NotifyOnLoss:             true,
	})
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, svc.ReleaseLock(context.Background(), "job_lock"))
	assert.Equal(t, []string{"job_lock"}, repo.released)

	select {
	case _, ok := <-lockLostCh:
		assert.False(t, ok, "channel should be closed without an event")
	case <-time.After(time.Second):
		t.Fatal("lock lost channel was not closed on release")
	}

	countAfterRelease := repo.getRefreshCount()
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, countAfterRelease, repo.getRefreshCount(), "heartbeat kept running after release")
}

func TestSecondInstanceCannotAcquireHeldLock(t *testing.T) {
	repo := &fakeLockRepo{}
	first := NewLockService(repo, "instance-1")
	second := NewLockService(repo, "instance-2")

	acquired, _, err := first.AcquireLock(context.Background(), "job_lock", LockOptions{})
	require.NoError(t, err)
	require.True(t, acquired)
	defer first.ReleaseLock(context.Background(), "job_lock")

	acquired, lockLostCh, err := second.AcquireLock(context.Background(), "job_lock", LockOptions{})
	require.NoError(t, err)
	assert.False(t, acquired)
	assert.Nil(t, lockLostCh)
}
