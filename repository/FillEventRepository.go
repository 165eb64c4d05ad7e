package repository

import (
	"context"

	"github.com/Tayttopaikka/tayttopaikka-backend/db"
	"github.com/Tayttopaikka/tayttopaikka-backend/entity"
	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
)

// unpaidFilter matches fill events with no linked COMPLETED payment event.
const unpaidFilter = `not exists (
	select 1
	from fill_event_payment_event fepe
	join payment_event pe on pe.id = fepe.payment_event_id
	where fepe.fill_event_id = fill_event.id
		and pe.status = 'COMPLETED'
)`

type FillEventRepository interface {
	CreateFillEvent(ctx context.Context, ent *entity.FillEventEntity) error
	GetFillEventById(ctx context.Context, fillEventId int64) (*entity.FillEventEntity, error)
	GetFillEventsByUser(ctx context.Context, userId string) ([]entity.FillEventEntity, error)
	GetUnpaidFillEvents(ctx context.Context, userId string) ([]entity.FillEventEntity, error)
	CountUnpaidFillEvents(ctx context.Context, userId string) (int, error)
}

func NewFillEventRepository(cp db.ConnectionProvider) FillEventRepository {
	return &fillEventRepositoryImpl{cp: cp}
}

type fillEventRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (f fillEventRepositoryImpl) CreateFillEvent(ctx context.Context, ent *entity.FillEventEntity) error {
	_, err := f.cp.GetConnection().ModelContext(ctx, ent).Insert()
	return err
}

func (f fillEventRepositoryImpl) GetFillEventById(ctx context.Context, fillEventId int64) (*entity.FillEventEntity, error) {
	var event entity.FillEventEntity
	err := f.cp.GetConnection().ModelContext(ctx, &event).
		Where("id = ?", fillEventId).
		First()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (f fillEventRepositoryImpl) GetFillEventsByUser(ctx context.Context, userId string) ([]entity.FillEventEntity, error) {
	var events []entity.FillEventEntity
	err := f.cp.GetConnection().ModelContext(ctx, &events).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Select()
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (f fillEventRepositoryImpl) GetUnpaidFillEvents(ctx context.Context, userId string) ([]entity.FillEventEntity, error) {
	var events []entity.FillEventEntity
	err := f.cp.GetConnection().ModelContext(ctx, &events).
		Where("user_id = ?", userId).
		Where(unpaidFilter).
		Order("created_at ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to query unpaid fill events")
	}
	return events, nil
}

func (f fillEventRepositoryImpl) CountUnpaidFillEvents(ctx context.Context, userId string) (int, error) {
	count, err := f.cp.GetConnection().ModelContext(ctx, &entity.FillEventEntity{}).
		Where("user_id = ?", userId).
		Where(unpaidFilter).
		Count()
	if err != nil {
		return 0, errors.Wrap(err, "failed to count unpaid fill events")
	}
	return count, nil
}
