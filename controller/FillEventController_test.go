package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Tayttopaikka/tayttopaikka-backend/exception"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFillEventService struct {
	fillEvents map[int64]*view.FillEvent
}

func (f *fakeFillEventService) CreateFillEvent(ctx context.Context, req *view.CreateFillEventReq) (*view.FillEvent, error) {
	return nil, nil
}

func (f *fakeFillEventService) GetFillEvent(ctx context.Context, fillEventId int64) (*view.FillEvent, error) {
	if event, ok := f.fillEvents[fillEventId]; ok {
		return event, nil
	}
	return nil, &exception.CustomError{
		Status:  http.StatusNotFound,
		Code:    exception.FillEventNotFound,
		Message: exception.FillEventNotFoundMsg,
		Params:  map[string]interface{}{"fillEventId": fillEventId},
	}
}

func (f *fakeFillEventService) GetFillEventsByUser(ctx context.Context, userId string) ([]view.FillEvent, error) {
	return nil, nil
}

func (f *fakeFillEventService) GetUnpaidFillEvents(ctx context.Context, userId string) ([]view.FillEvent, error) {
	return nil, nil
}

func newFillEventTestRouter(svc *fakeFillEventService) *mux.Router {
	c := NewFillEventController(svc)
	r := mux.NewRouter()
	r.HandleFunc("/api/fill-events/{fillEventId}", c.GetFillEvent).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{userId}/fill-events", c.GetFillEventsByUser).Methods(http.MethodGet)
	return r
}

func TestGetFillEventById(t *testing.T) {
	svc := &fakeFillEventService{fillEvents: map[int64]*view.FillEvent{
		42: {Id: 42, UserId: testUserId, GasMixture: "EAN32"},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/fill-events/42", nil)
	w := httptest.NewRecorder()
	newFillEventTestRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result view.FillEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, int64(42), result.Id)
	assert.Equal(t, "EAN32", result.GasMixture)
}

func TestGetUnknownFillEventReturnsNotFound(t *testing.T) {
	svc := &fakeFillEventService{}

	req := httptest.NewRequest(http.MethodGet, "/api/fill-events/42", nil)
	w := httptest.NewRecorder()
	newFillEventTestRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var body exception.CustomError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, exception.FillEventNotFound, body.Code)
}

func TestGetFillEventNonNumericIdIsRejected(t *testing.T) {
	svc := &fakeFillEventService{}

	req := httptest.NewRequest(http.MethodGet, "/api/fill-events/abc", nil)
	w := httptest.NewRecorder()
	newFillEventTestRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body exception.CustomError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, exception.IncorrectParamType, body.Code)
}

func TestGetFillEventsMalformedUserIdIsRejected(t *testing.T) {
	svc := &fakeFillEventService{}

	req := httptest.NewRequest(http.MethodGet, "/api/users/not-a-uuid/fill-events", nil)
	w := httptest.NewRecorder()
	newFillEventTestRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body exception.CustomError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, exception.InvalidParameterValue, body.Code)
}
