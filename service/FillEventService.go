package service

import (
	"context"
	"net/http"
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/entity"
	"github.com/Tayttopaikka/tayttopaikka-backend/exception"
	"github.com/Tayttopaikka/tayttopaikka-backend/repository"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
)

type FillEventService interface {
	CreateFillEvent(ctx context.Context, req *view.CreateFillEventReq) (*view.FillEvent, error)
	GetFillEvent(ctx context.Context, fillEventId int64) (*view.FillEvent, error)
	GetFillEventsByUser(ctx context.Context, userId string) ([]view.FillEvent, error)
	GetUnpaidFillEvents(ctx context.Context, userId string) ([]view.FillEvent, error)
}

func NewFillEventService(fillEventRepo repository.FillEventRepository, userRepo repository.UserRepository, cylinderSetRepo repository.CylinderSetRepository) FillEventService {
	return &fillEventServiceImpl{
		fillEventRepo:   fillEventRepo,
		userRepo:        userRepo,
		cylinderSetRepo: cylinderSetRepo,
	}
}

type fillEventServiceImpl struct {
	fillEventRepo   repository.FillEventRepository
	userRepo        repository.UserRepository
	cylinderSetRepo repository.CylinderSetRepository
}

func (f *fillEventServiceImpl) CreateFillEvent(ctx context.Context, req *view.CreateFillEventReq) (*view.FillEvent, error) {
	user, err := f.userRepo.GetUserById(ctx, req.UserId)
	if err != nil {
		return nil, err
	}
	if user == nil || user.DeletedAt != nil {
		return nil, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.UserNotFound,
			Message: exception.UserNotFoundMsg,
			Params:  map[string]interface{}{"userId": req.UserId},
		}
	}
	set, err := f.cylinderSetRepo.GetCylinderSet(ctx, req.CylinderSetId)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.CylinderSetNotFound,
			Message: exception.CylinderSetNotFoundMsg,
			Params:  map[string]interface{}{"setId": req.CylinderSetId},
		}
	}

	ent := &entity.FillEventEntity{
		UserId:        req.UserId,
		CylinderSetId: req.CylinderSetId,
		GasMixture:    req.GasMixture,
		Description:   req.Description,
		PriceEurCents: req.PriceEurCents,
		CreatedAt:     time.Now(),
	}
	if err := f.fillEventRepo.CreateFillEvent(ctx, ent); err != nil {
		return nil, err
	}
	return entity.MakeFillEventView(ent), nil
}

func (f *fillEventServiceImpl) GetFillEvent(ctx context.Context, fillEventId int64) (*view.FillEvent, error) {
	ent, err := f.fillEventRepo.GetFillEventById(ctx, fillEventId)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.FillEventNotFound,
			Message: exception.FillEventNotFoundMsg,
			Params:  map[string]interface{}{"fillEventId": fillEventId},
		}
	}
	return entity.MakeFillEventView(ent), nil
}

func (f *fillEventServiceImpl) GetFillEventsByUser(ctx context.Context, userId string) ([]view.FillEvent, error) {
	entities, err := f.fillEventRepo.GetFillEventsByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return makeFillEventViews(entities), nil
}

func (f *fillEventServiceImpl) GetUnpaidFillEvents(ctx context.Context, userId string) ([]view.FillEvent, error) {
	entities, err := f.fillEventRepo.GetUnpaidFillEvents(ctx, userId)
	if err != nil {
		return nil, err
	}
	return makeFillEventViews(entities), nil
}

func makeFillEventViews(entities []entity.FillEventEntity) []view.FillEvent {
	result := make([]view.FillEvent, 0, len(entities))
	for i := range entities {
		result = append(result, *entity.MakeFillEventView(&entities[i]))
	}
	return result
}
