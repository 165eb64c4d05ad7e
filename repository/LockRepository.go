package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/db"
	"github.com/Tayttopaikka/tayttopaikka-backend/entity"
	"github.com/go-pg/pg/v10"
)

var (
	ErrLockAlreadyAcquired = errors.New("lock is already acquired by another instance")
	ErrLockNotFound        = errors.New("lock not found")
)

const clockSkewMargin = 10 * time.Second

// LockRepository implements a lease-based lock in the locks table. The
// cleanup job takes it before a run so two backend instances cannot process
// the same candidates concurrently.
type LockRepository interface {
	TryAcquireLock(ctx context.Context, lockName string, instanceId string, leaseSeconds int) (bool, error)
	RefreshLock(ctx context.Context, lockName string, instanceId string, leaseSeconds int) error
	ReleaseLock(ctx context.Context, lockName string, instanceId string) error
	GetLockInfo(ctx context.Context, lockName string) (*entity.LockEntity, error)
}

func NewLockRepository(cp db.ConnectionProvider) LockRepository {
	return &lockRepositoryImpl{cp: cp}
}

type lockRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (r *lockRepositoryImpl) TryAcquireLock(ctx context.Context, lockName string, instanceId string, leaseSeconds int) (bool, error) {
	now := time.Now().UTC()
	safeNow := now.Add(-clockSkewMargin)
	expiresAt := now.Add(time.Duration(leaseSeconds) * time.Second)

	existing, err := r.GetLockInfo(ctx, lockName)
	if err != nil && !errors.Is(err, ErrLockNotFound) {
		return false, err
	}

	if existing == nil {
		lock := &entity.LockEntity{
			Name:       lockName,
			InstanceId: instanceId,
			AcquiredAt: now,
			ExpiresAt:  expiresAt,
			Version:    1,
		}
		_, err := r.cp.GetConnection().ModelContext(ctx, lock).Insert()
		if err != nil {
			if pgErr, ok := err.(pg.Error); ok && pgErr.IntegrityViolation() {
				return false, nil
			}
			return false, fmt.Errorf("failed to insert lock: %w", err)
		}
		return true, nil
	}

	if existing.ExpiresAt.After(safeNow) {
		return false, nil
	}

	result, err := r.cp.GetConnection().ModelContext(ctx, &entity.LockEntity{}).
		Set("instance_id = ?, acquired_at = ?, expires_at = ?, version = version + 1", instanceId, now, expiresAt).
		Where("name = ? AND version = ? AND expires_at < ?", lockName, existing.Version, safeNow).
		Update()
	if err != nil {
		return false, fmt.Errorf("failed to take over lock: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// RefreshLock extends the lease of a lock this instance still holds. The
// update matches on instance_id, so it fails with ErrLockAlreadyAcquired
// after another instance has taken the lock over.
func (r *lockRepositoryImpl) RefreshLock(ctx context.Context, lockName string, instanceId string, leaseSeconds int) error {
	expiresAt := time.Now().UTC().Add(time.Duration(leaseSeconds) * time.Second)

	result, err := r.cp.GetConnection().ModelContext(ctx, &entity.LockEntity{}).
		Set("expires_at = ?, version = version + 1", expiresAt).
		Where("name = ? AND instance_id = ?", lockName, instanceId).
		Update()
	if err != nil {
		return fmt.Errorf("failed to refresh lock: %w", err)
	}
	if result.RowsAffected() == 0 {
		if _, err := r.GetLockInfo(ctx, lockName); err != nil {
			return err
		}
		return ErrLockAlreadyAcquired
	}
	return nil
}

func (r *lockRepositoryImpl) ReleaseLock(ctx context.Context, lockName string, instanceId string) error {
	pastTime := time.Now().UTC().Add(-clockSkewMargin)

	result, err := r.cp.GetConnection().ModelContext(ctx, &entity.LockEntity{}).
		Set("expires_at = ?, version = version + 1", pastTime).
		Where("name = ? AND instance_id = ?", lockName, instanceId).
		Update()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result.RowsAffected() == 0 {
		lock, err := r.GetLockInfo(ctx, lockName)
		if err != nil {
			if errors.Is(err, ErrLockNotFound) {
				return nil
			}
			return err
		}
		if lock.InstanceId != instanceId {
			return ErrLockAlreadyAcquired
		}
	}
	return nil
}

func (r *lockRepositoryImpl) GetLockInfo(ctx context.Context, lockName string) (*entity.LockEntity, error) {
	var lock entity.LockEntity
	err := r.cp.GetConnection().ModelContext(ctx, &lock).
		Where("name = ?", lockName).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, ErrLockNotFound
		}
		return nil, fmt.Errorf("failed to get lock info: %w", err)
	}
	return &lock, nil
}
