package controller

import (
	"net/http"

	"github.com/Tayttopaikka/tayttopaikka-backend/service"
	"github.com/Tayttopaikka/tayttopaikka-backend/utils"
)

type GasController interface {
	GetGases(w http.ResponseWriter, r *http.Request)
}

func NewGasController(gasService service.GasService) GasController {
	return &gasControllerImpl{gasService: gasService}
}

type gasControllerImpl struct {
	gasService service.GasService
}

func (g gasControllerImpl) GetGases(w http.ResponseWriter, r *http.Request) {
	gases, err := g.gasService.GetGases(r.Context())
	if err != nil {
		utils.RespondWithError(w, "Failed to get gases", err)
		return
	}
	utils.RespondWithJson(w, http.StatusOK, gases)
}
