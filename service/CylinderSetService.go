package service

import (
	"context"
	"net/http"
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/entity"
	"github.com/Tayttopaikka/tayttopaikka-backend/exception"
	"github.com/Tayttopaikka/tayttopaikka-backend/repository"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
	"github.com/go-pg/pg/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type CylinderSetService interface {
	CreateCylinderSet(ctx context.Context, req *view.CreateCylinderSetReq) (*view.DivingCylinderSet, error)
	GetCylinderSet(ctx context.Context, setId string) (*view.DivingCylinderSet, error)
	GetCylinderSetsByOwner(ctx context.Context, owner string, includeArchived bool) ([]view.DivingCylinderSet, error)
	ArchiveCylinderSet(ctx context.Context, setId string) error
}

func NewCylinderSetService(cylinderSetRepo repository.CylinderSetRepository, userRepo repository.UserRepository) CylinderSetService {
	return &cylinderSetServiceImpl{cylinderSetRepo: cylinderSetRepo, userRepo: userRepo}
}

type cylinderSetServiceImpl struct {
	cylinderSetRepo repository.CylinderSetRepository
	userRepo        repository.UserRepository
}

func (c *cylinderSetServiceImpl) CreateCylinderSet(ctx context.Context, req *view.CreateCylinderSetReq) (*view.DivingCylinderSet, error) {
	owner, err := c.userRepo.GetUserById(ctx, req.Owner)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.DeletedAt != nil {
		return nil, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.UserNotFound,
			Message: exception.UserNotFoundMsg,
			Params:  map[string]interface{}{"userId": req.Owner},
		}
	}

	set := &entity.DivingCylinderSetEntity{
		Id:    uuid.New().String(),
		Owner: req.Owner,
		Name:  req.Name,
	}
	cylinders := make([]entity.DivingCylinderEntity, 0, len(req.Cylinders))
	for _, cylinder := range req.Cylinders {
		inspection, err := time.Parse("2006-01-02", cylinder.Inspection)
		if err != nil {
			return nil, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.IncorrectParamType,
				Message: exception.IncorrectParamTypeMsg,
				Params:  map[string]interface{}{"param": "inspection", "type": "date (2006-01-02)"},
				Debug:   err.Error(),
			}
		}
		cylinders = append(cylinders, entity.DivingCylinderEntity{
			Id:           uuid.New().String(),
			Volume:       cylinder.Volume,
			Pressure:     cylinder.Pressure,
			Material:     cylinder.Material,
			SerialNumber: cylinder.SerialNumber,
			Inspection:   inspection,
		})
	}

	if err := c.cylinderSetRepo.CreateCylinderSet(ctx, set, cylinders); err != nil {
		return nil, err
	}
	return entity.MakeCylinderSetView(set, cylinders), nil
}

func (c *cylinderSetServiceImpl) GetCylinderSet(ctx context.Context, setId string) (*view.DivingCylinderSet, error) {
	set, err := c.cylinderSetRepo.GetCylinderSet(ctx, setId)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.CylinderSetNotFound,
			Message: exception.CylinderSetNotFoundMsg,
			Params:  map[string]interface{}{"setId": setId},
		}
	}
	cylinders, err := c.cylinderSetRepo.GetCylindersOfSet(ctx, setId)
	if err != nil {
		return nil, err
	}
	return entity.MakeCylinderSetView(set, cylinders), nil
}

func (c *cylinderSetServiceImpl) GetCylinderSetsByOwner(ctx context.Context, owner string, includeArchived bool) ([]view.DivingCylinderSet, error) {
	sets, err := c.cylinderSetRepo.GetCylinderSetsByOwner(ctx, owner, includeArchived)
	if err != nil {
		return nil, err
	}
	result := make([]view.DivingCylinderSet, 0, len(sets))
	for i := range sets {
		cylinders, err := c.cylinderSetRepo.GetCylindersOfSet(ctx, sets[i].Id)
		if err != nil {
			return nil, err
		}
		result = append(result, *entity.MakeCylinderSetView(&sets[i], cylinders))
	}
	return result, nil
}

func (c *cylinderSetServiceImpl) ArchiveCylinderSet(ctx context.Context, setId string) error {
	err := c.cylinderSetRepo.SetArchived(ctx, setId, true)
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return &exception.CustomError{
				Status:  http.StatusNotFound,
				Code:    exception.CylinderSetNotFound,
				Message: exception.CylinderSetNotFoundMsg,
				Params:  map[string]interface{}{"setId": setId},
			}
		}
		return err
	}
	return nil
}
