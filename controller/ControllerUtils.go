package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/Tayttopaikka/tayttopaikka-backend/exception"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var bodyValidator = validator.New()

func getStringParam(r *http.Request, p string) string {
	params := mux.Vars(r)
	return params[p]
}

// getUuidParam rejects malformed ids before they reach a repository, where
// a non-uuid value would fail the column cast and surface as a 500.
func getUuidParam(r *http.Request, p string) (string, *exception.CustomError) {
	value := mux.Vars(r)[p]
	if _, err := uuid.Parse(value); err != nil {
		return "", &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": p, "value": value},
		}
	}
	return value, nil
}

// readBody decodes the request body into v and runs struct validation.
// Returns a ready-to-send CustomError on any failure.
func readBody(r *http.Request, v interface{}) *exception.CustomError {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		}
	}
	if err := bodyValidator.Struct(v); err != nil {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		}
	}
	return nil
}
