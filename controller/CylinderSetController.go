package controller

import (
	"net/http"

	"github.com/Tayttopaikka/tayttopaikka-backend/service"
	"github.com/Tayttopaikka/tayttopaikka-backend/utils"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
)

type CylinderSetController interface {
	CreateCylinderSet(w http.ResponseWriter, r *http.Request)
	GetCylinderSet(w http.ResponseWriter, r *http.Request)
	GetCylinderSetsByOwner(w http.ResponseWriter, r *http.Request)
	ArchiveCylinderSet(w http.ResponseWriter, r *http.Request)
}

func NewCylinderSetController(cylinderSetService service.CylinderSetService) CylinderSetController {
	return &cylinderSetControllerImpl{cylinderSetService: cylinderSetService}
}

type cylinderSetControllerImpl struct {
	cylinderSetService service.CylinderSetService
}

func (c cylinderSetControllerImpl) CreateCylinderSet(w http.ResponseWriter, r *http.Request) {
	var req view.CreateCylinderSetReq
	if customError := readBody(r, &req); customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}
	set, err := c.cylinderSetService.CreateCylinderSet(r.Context(), &req)
	if err != nil {
		utils.RespondWithError(w, "Failed to create cylinder set", err)
		return
	}
	utils.RespondWithJson(w, http.StatusCreated, set)
}

func (c cylinderSetControllerImpl) GetCylinderSet(w http.ResponseWriter, r *http.Request) {
	setId, customError := getUuidParam(r, "setId")
	if customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}
	set, err := c.cylinderSetService.GetCylinderSet(r.Context(), setId)
	if err != nil {
		utils.RespondWithError(w, "Failed to get cylinder set", err)
		return
	}
	utils.RespondWithJson(w, http.StatusOK, set)
}

func (c cylinderSetControllerImpl) GetCylinderSetsByOwner(w http.ResponseWriter, r *http.Request) {
	owner, customError := getUuidParam(r, "userId")
	if customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}
	includeArchived := r.URL.Query().Get("includeArchived") == "true"
	sets, err := c.cylinderSetService.GetCylinderSetsByOwner(r.Context(), owner, includeArchived)
	if err != nil {
		utils.RespondWithError(w, "Failed to get cylinder sets", err)
		return
	}
	utils.RespondWithJson(w, http.StatusOK, sets)
}

func (c cylinderSetControllerImpl) ArchiveCylinderSet(w http.ResponseWriter, r *http.Request) {
	setId, customError := getUuidParam(r, "setId")
	if customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}
	if err := c.cylinderSetService.ArchiveCylinderSet(r.Context(), setId); err != nil {
		utils.RespondWithError(w, "Failed to archive cylinder set", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
