package controller

import (
	"net/http"

	"github.com/Tayttopaikka/tayttopaikka-backend/service"
	"github.com/Tayttopaikka/tayttopaikka-backend/utils"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
)

type UserController interface {
	CreateUser(w http.ResponseWriter, r *http.Request)
	GetUserById(w http.ResponseWriter, r *http.Request)
	GetUsers(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
}

func NewUserController(userService service.UserService) UserController {
	return &userControllerImpl{userService: userService}
}

type userControllerImpl struct {
	userService service.UserService
}

func (u userControllerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req view.CreateUserReq
	if customError := readBody(r, &req); customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}
	user, err := u.userService.CreateUser(r.Context(), &req)
	if err != nil {
		utils.RespondWithError(w, "Failed to create user", err)
		return
	}
	utils.RespondWithJson(w, http.StatusCreated, user)
}

func (u userControllerImpl) GetUserById(w http.ResponseWriter, r *http.Request) {
	userId, customError := getUuidParam(r, "userId")
	if customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}
	user, err := u.userService.GetUser(r.Context(), userId)
	if err != nil {
		utils.RespondWithError(w, "Failed to get user", err)
		return
	}
	utils.RespondWithJson(w, http.StatusOK, user)
}

func (u userControllerImpl) GetUsers(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("includeArchived") == "true"
	users, err := u.userService.GetUsers(r.Context(), includeArchived)
	if err != nil {
		utils.RespondWithError(w, "Failed to get users", err)
		return
	}
	utils.RespondWithJson(w, http.StatusOK, users)
}

func (u userControllerImpl) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userId, paramError := getUuidParam(r, "userId")
	if paramError != nil {
		utils.RespondWithCustomError(w, paramError)
		return
	}
	var req view.UpdateUserReq
	if customError := readBody(r, &req); customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}
	user, err := u.userService.UpdateUser(r.Context(), userId, &req)
	if err != nil {
		utils.RespondWithError(w, "Failed to update user", err)
		return
	}
	utils.RespondWithJson(w, http.StatusOK, user)
}

func (u userControllerImpl) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userId, customError := getUuidParam(r, "userId")
	if customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}
	if err := u.userService.DeleteUser(r.Context(), userId); err != nil {
		utils.RespondWithError(w, "Failed to delete user", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
