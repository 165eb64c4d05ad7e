package controller

import (
	"net/http"

	"github.com/Tayttopaikka/tayttopaikka-backend/exception"
	"github.com/Tayttopaikka/tayttopaikka-backend/service"
	"github.com/Tayttopaikka/tayttopaikka-backend/utils"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
)

// The caller's identity arrives in the X-User-Id header, set by the
// authenticating gateway in front of this service.
const userIdHeader = "X-User-Id"

type ArchivedUsersController interface {
	GetArchivedUsers(w http.ResponseWriter, r *http.Request)
	UnarchiveUser(w http.ResponseWriter, r *http.Request)
	GetCleanupHistory(w http.ResponseWriter, r *http.Request)
}

func NewArchivedUsersController(archivedUsersService service.ArchivedUsersService) ArchivedUsersController {
	return &archivedUsersControllerImpl{archivedUsersService: archivedUsersService}
}

type archivedUsersControllerImpl struct {
	archivedUsersService service.ArchivedUsersService
}

func (a archivedUsersControllerImpl) GetArchivedUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.archivedUsersService.GetArchivedUsers(r.Context())
	if err != nil {
		utils.RespondWithError(w, "Failed to get archived users", err)
		return
	}
	utils.RespondWithJson(w, http.StatusOK, users)
}

func (a archivedUsersControllerImpl) UnarchiveUser(w http.ResponseWriter, r *http.Request) {
	userId, customError := getUuidParam(r, "userId")
	if customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}
	adminId := r.Header.Get(userIdHeader)
	if adminId == "" {
		utils.RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.RequiredParamsMissing,
			Message: exception.RequiredParamsMissingMsg,
			Params:  map[string]interface{}{"params": userIdHeader},
		})
		return
	}

	err := a.archivedUsersService.UnarchiveUser(r.Context(), userId, adminId)
	if err != nil {
		utils.RespondWithError(w, "Failed to unarchive user", err)
		return
	}
	utils.RespondWithJson(w, http.StatusOK, view.MessageResponse{Message: "User successfully unarchived"})
}

func (a archivedUsersControllerImpl) GetCleanupHistory(w http.ResponseWriter, r *http.Request) {
	userId, customError := getUuidParam(r, "userId")
	if customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}
	entries, err := a.archivedUsersService.GetCleanupHistory(r.Context(), userId)
	if err != nil {
		utils.RespondWithError(w, "Failed to get cleanup history", err)
		return
	}
	utils.RespondWithJson(w, http.StatusOK, entries)
}
