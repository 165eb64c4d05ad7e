package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/repository"
	"github.com/Tayttopaikka/tayttopaikka-backend/utils"
	log "github.com/sirupsen/logrus"
)

const (
	defaultLeaseSeconds             = 60
	defaultHeartbeatIntervalSeconds = 20
)

type LockLostEvent struct {
	LockName   string
	InstanceId string
	Reason     string
}

type LockOptions struct {
	LeaseSeconds             int
	HeartbeatIntervalSeconds int
	NotifyOnLoss             bool
}

// LockService hands out database leases so only one backend instance runs a
// given job at a time. The lease is short and refreshed by a heartbeat while
// the holder is alive: a crashed instance frees the lock within one lease,
// and a long run never outlives its lease. When NotifyOnLoss is set the
// returned channel reports a lost lease so the holder can stop working.
type LockService interface {
	AcquireLock(ctx context.Context, lockName string, options LockOptions) (bool, <-chan LockLostEvent, error)
	ReleaseLock(ctx context.Context, lockName string) error
}

func NewLockService(lockRepo repository.LockRepository, instanceId string) LockService {
	return &lockServiceImpl{
		lockRepo:           lockRepo,
		instanceId:         instanceId,
		heartbeatCancelers: make(map[string]context.CancelFunc),
		lockLostChannels:   make(map[string]chan LockLostEvent),
	}
}

type lockServiceImpl struct {
	lockRepo   repository.LockRepository
	instanceId string

	mu                 sync.Mutex
	heartbeatCancelers map[string]context.CancelFunc
	lockLostChannels   map[string]chan LockLostEvent
}

func (s *lockServiceImpl) AcquireLock(ctx context.Context, lockName string, options LockOptions) (bool, <-chan LockLostEvent, error) {
	if lockName == "" {
		return false, nil, fmt.Errorf("lock name cannot be empty")
	}
	options = normalizeLockOptions(options)

	acquired, err := s.lockRepo.TryAcquireLock(ctx, lockName, s.instanceId, options.LeaseSeconds)
	if err != nil || !acquired {
		return acquired, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, exists := s.heartbeatCancelers[lockName]; exists {
		cancel()
	}
	heartbeatCtx, cancel := context.WithCancel(ctx)
	s.heartbeatCancelers[lockName] = cancel

	var notifyChan chan LockLostEvent
	if options.NotifyOnLoss {
		notifyChan = make(chan LockLostEvent, 1)
		s.lockLostChannels[lockName] = notifyChan
	}

	utils.SafeAsync(func() {
		s.runHeartbeat(heartbeatCtx, lockName, options)
	})

	log.Debugf("Acquired lock %s for instance %s with lease %ds and heartbeat %ds",
		lockName, s.instanceId, options.LeaseSeconds, options.HeartbeatIntervalSeconds)
	return true, notifyChan, nil
}

func normalizeLockOptions(options LockOptions) LockOptions {
	if options.LeaseSeconds <= 0 {
		options.LeaseSeconds = defaultLeaseSeconds
	}
	if options.HeartbeatIntervalSeconds <= 0 {
		options.HeartbeatIntervalSeconds = defaultHeartbeatIntervalSeconds
	}
	if options.HeartbeatIntervalSeconds >= options.LeaseSeconds {
		options.HeartbeatIntervalSeconds = options.LeaseSeconds / 3
	}
	return options
}

func (s *lockServiceImpl) ReleaseLock(ctx context.Context, lockName string) error {
	s.cleanupLockResources(lockName)
	return s.lockRepo.ReleaseLock(ctx, lockName, s.instanceId)
}

func (s *lockServiceImpl) cleanupLockResources(lockName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, exists := s.heartbeatCancelers[lockName]; exists {
		cancel()
		delete(s.heartbeatCancelers, lockName)
	}
	if notifyChan, exists := s.lockLostChannels[lockName]; exists {
		close(notifyChan)
		delete(s.lockLostChannels, lockName)
	}
}

func (s *lockServiceImpl) runHeartbeat(ctx context.Context, lockName string, options LockOptions) {
	ticker := time.NewTicker(time.Duration(options.HeartbeatIntervalSeconds) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Tracef("Stopping heartbeat for lock %s", lockName)
			return
		case <-ticker.C:
			if err := s.refreshLease(ctx, lockName, options); err != nil {
				return
			}
		}
	}
}

func (s *lockServiceImpl) refreshLease(ctx context.Context, lockName string, options LockOptions) error {
	err := s.lockRepo.RefreshLock(ctx, lockName, s.instanceId, options.LeaseSeconds)
	if err == nil {
		log.Tracef("Refreshed lease for lock %s", lockName)
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	log.Errorf("Failed to refresh lock %s: %v", lockName, err)
	if options.NotifyOnLoss {
		s.sendLockLostNotification(lockName, err.Error())
	}
	return err
}

func (s *lockServiceImpl) sendLockLostNotification(lockName string, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifyChan, exists := s.lockLostChannels[lockName]
	if !exists {
		return
	}
	select {
	case notifyChan <- LockLostEvent{LockName: lockName, InstanceId: s.instanceId, Reason: reason}:
	default:
		log.Warnf("Failed to send lock lost notification for %s: channel buffer full", lockName)
	}
	close(notifyChan)
	delete(s.lockLostChannels, lockName)
}
