package controller

import (
	"net/http"
	"strconv"

	"github.com/Tayttopaikka/tayttopaikka-backend/exception"
	"github.com/Tayttopaikka/tayttopaikka-backend/service"
	"github.com/Tayttopaikka/tayttopaikka-backend/utils"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
)

type FillEventController interface {
	CreateFillEvent(w http.ResponseWriter, r *http.Request)
	GetFillEvent(w http.ResponseWriter, r *http.Request)
	GetFillEventsByUser(w http.ResponseWriter, r *http.Request)
	GetUnpaidFillEvents(w http.ResponseWriter, r *http.Request)
}

func NewFillEventController(fillEventService service.FillEventService) FillEventController {
	return &fillEventControllerImpl{fillEventService: fillEventService}
}

type fillEventControllerImpl struct {
	fillEventService service.FillEventService
}

func (f fillEventControllerImpl) CreateFillEvent(w http.ResponseWriter, r *http.Request) {
	var req view.CreateFillEventReq
	if customError := readBody(r, &req); customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}
	fillEvent, err := f.fillEventService.CreateFillEvent(r.Context(), &req)
	if err != nil {
		utils.RespondWithError(w, "Failed to create fill event", err)
		return
	}
	utils.RespondWithJson(w, http.StatusCreated, fillEvent)
}

func (f fillEventControllerImpl) GetFillEvent(w http.ResponseWriter, r *http.Request) {
	fillEventId, err := strconv.ParseInt(getStringParam(r, "fillEventId"), 10, 64)
	if err != nil {
		utils.RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.IncorrectParamType,
			Message: exception.IncorrectParamTypeMsg,
			Params:  map[string]interface{}{"param": "fillEventId", "type": "integer"},
			Debug:   err.Error(),
		})
		return
	}
	fillEvent, svcErr := f.fillEventService.GetFillEvent(r.Context(), fillEventId)
	if svcErr != nil {
		utils.RespondWithError(w, "Failed to get fill event", svcErr)
		return
	}
	utils.RespondWithJson(w, http.StatusOK, fillEvent)
}

func (f fillEventControllerImpl) GetFillEventsByUser(w http.ResponseWriter, r *http.Request) {
	userId, customError := getUuidParam(r, "userId")
	if customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}
	fillEvents, err := f.fillEventService.GetFillEventsByUser(r.Context(), userId)
	if err != nil {
		utils.RespondWithError(w, "Failed to get fill events", err)
		return
	}
	utils.RespondWithJson(w, http.StatusOK, fillEvents)
}

func (f fillEventControllerImpl) GetUnpaidFillEvents(w http.ResponseWriter, r *http.Request) {
	userId, customError := getUuidParam(r, "userId")
	if customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}
	fillEvents, err := f.fillEventService.GetUnpaidFillEvents(r.Context(), userId)
	if err != nil {
		utils.RespondWithError(w, "Failed to get unpaid fill events", err)
		return
	}
	utils.RespondWithJson(w, http.StatusOK, fillEvents)
}
