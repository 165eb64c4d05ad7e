package repository

import (
	"context"

	"github.com/Tayttopaikka/tayttopaikka-backend/db"
	"github.com/Tayttopaikka/tayttopaikka-backend/entity"
	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
)

type CylinderSetRepository interface {
	CreateCylinderSet(ctx context.Context, set *entity.DivingCylinderSetEntity, cylinders []entity.DivingCylinderEntity) error
	GetCylinderSet(ctx context.Context, setId string) (*entity.DivingCylinderSetEntity, error)
	GetCylinderSetsByOwner(ctx context.Context, owner string, includeArchived bool) ([]entity.DivingCylinderSetEntity, error)
	GetCylindersOfSet(ctx context.Context, setId string) ([]entity.DivingCylinderEntity, error)
	SetArchived(ctx context.Context, setId string, archived bool) error
}

func NewCylinderSetRepository(cp db.ConnectionProvider) CylinderSetRepository {
	return &cylinderSetRepositoryImpl{cp: cp}
}

type cylinderSetRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (c cylinderSetRepositoryImpl) CreateCylinderSet(ctx context.Context, set *entity.DivingCylinderSetEntity, cylinders []entity.DivingCylinderEntity) error {
	return c.cp.GetConnection().RunInTransaction(ctx, func(tx *pg.Tx) error {
		if _, err := tx.Model(set).Insert(); err != nil {
			return errors.Wrap(err, "failed to insert cylinder set")
		}
		for i := range cylinders {
			if _, err := tx.Model(&cylinders[i]).Insert(); err != nil {
				return errors.Wrap(err, "failed to insert cylinder")
			}
			link := entity.CylinderToSetEntity{CylinderId: cylinders[i].Id, CylinderSetId: set.Id}
			if _, err := tx.Model(&link).Insert(); err != nil {
				return errors.Wrap(err, "failed to link cylinder to set")
			}
		}
		return nil
	})
}

func (c cylinderSetRepositoryImpl) GetCylinderSet(ctx context.Context, setId string) (*entity.DivingCylinderSetEntity, error) {
	var set entity.DivingCylinderSetEntity
	err := c.cp.GetConnection().ModelContext(ctx, &set).
		Where("id = ?", setId).
		First()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &set, nil
}

func (c cylinderSetRepositoryImpl) GetCylinderSetsByOwner(ctx context.Context, owner string, includeArchived bool) ([]entity.DivingCylinderSetEntity, error) {
	var sets []entity.DivingCylinderSetEntity
	query := c.cp.GetConnection().ModelContext(ctx, &sets).
		Where("owner = ?", owner)
	if !includeArchived {
		query = query.Where("archived = false")
	}
	err := query.Order("name ASC").Select()
	if err != nil {
		return nil, err
	}
	return sets, nil
}

func (c cylinderSetRepositoryImpl) GetCylindersOfSet(ctx context.Context, setId string) ([]entity.DivingCylinderEntity, error) {
	var cylinders []entity.DivingCylinderEntity
	err := c.cp.GetConnection().ModelContext(ctx, &cylinders).
		Join("join diving_cylinder_to_set cts on cts.cylinder_id = diving_cylinder.id").
		Where("cts.cylinder_set_id = ?", setId).
		Select()
	if err != nil {
		return nil, err
	}
	return cylinders, nil
}

func (c cylinderSetRepositoryImpl) SetArchived(ctx context.Context, setId string, archived bool) error {
	result, err := c.cp.GetConnection().ModelContext(ctx, &entity.DivingCylinderSetEntity{}).
		Set("archived = ?", archived).
		Where("id = ?", setId).
		Update()
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pg.ErrNoRows
	}
	return nil
}
