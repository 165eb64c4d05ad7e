package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/exception"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArchivedUsersService struct {
	archivedUsers []view.ArchivedUser
	unarchived    map[string]string
	notFoundIds   map[string]bool
}

func (f *fakeArchivedUsersService) GetArchivedUsers(ctx context.Context) ([]view.ArchivedUser, error) {
	return f.archivedUsers, nil
}

func (f *fakeArchivedUsersService) UnarchiveUser(ctx context.Context, userId string, adminId string) error {
	if f.notFoundIds[userId] {
		return &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.UserNotArchived,
			Message: exception.UserNotArchivedMsg,
			Params:  map[string]interface{}{"userId": userId},
		}
	}
	if f.unarchived == nil {
		f.unarchived = map[string]string{}
	}
	f.unarchived[userId] = adminId
	return nil
}

func (f *fakeArchivedUsersService) GetCleanupHistory(ctx context.Context, userId string) ([]view.CleanupAuditEntry, error) {
	return nil, nil
}

const (
	testUserId    = "6f1e8c4a-88a1-4a5f-9d35-2b9f0a2f1c11"
	missingUserId = "0a2b4c6d-8e90-4f12-a345-6789abcdef01"
)

func newTestRouter(svc *fakeArchivedUsersService) *mux.Router {
	c := NewArchivedUsersController(svc)
	r := mux.NewRouter()
	r.HandleFunc("/api/archived-users", c.GetArchivedUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/archived-users/{userId}/unarchive", c.UnarchiveUser).Methods(http.MethodPost)
	return r
}

func TestGetArchivedUsersReturnsList(t *testing.T) {
	email := "diver@example.com"
	svc := &fakeArchivedUsersService{archivedUsers: []view.ArchivedUser{
		{
			Id:                  "u1",
			Email:               &email,
			LastLogin:           time.Now().AddDate(-4, 0, 0),
			ArchivedAt:          time.Now().AddDate(0, -6, 0),
			MonthsInactive:      42,
			UnpaidInvoicesCount: 1,
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/archived-users", nil)
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result []view.ArchivedUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result, 1)
	assert.Equal(t, "u1", result[0].Id)
	assert.Equal(t, 42, result[0].MonthsInactive)
}

func TestUnarchiveUserSuccess(t *testing.T) {
	svc := &fakeArchivedUsersService{}

	req := httptest.NewRequest(http.MethodPost, "/api/archived-users/"+testUserId+"/unarchive", nil)
	req.Header.Set("X-User-Id", "admin-1")
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result view.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "User successfully unarchived", result.Message)
	assert.Equal(t, "admin-1", svc.unarchived[testUserId])
}

func TestUnarchiveUserMissingAdminHeader(t *testing.T) {
	svc := &fakeArchivedUsersService{}

	req := httptest.NewRequest(http.MethodPost, "/api/archived-users/"+testUserId+"/unarchive", nil)
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body exception.CustomError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, exception.RequiredParamsMissing, body.Code)
	assert.Empty(t, svc.unarchived)
}

func TestUnarchiveUserMalformedIdIsRejected(t *testing.T) {
	svc := &fakeArchivedUsersService{}

	req := httptest.NewRequest(http.MethodPost, "/api/archived-users/not-a-uuid/unarchive", nil)
	req.Header.Set("X-User-Id", "admin-1")
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body exception.CustomError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, exception.InvalidParameterValue, body.Code)
	assert.Empty(t, svc.unarchived)
}

func TestUnarchiveUserNotFound(t *testing.T) {
	svc := &fakeArchivedUsersService{notFoundIds: map[string]bool{missingUserId: true}}

	req := httptest.NewRequest(http.MethodPost, "/api/archived-users/"+missingUserId+"/unarchive", nil)
	req.Header.Set("X-User-Id", "admin-1")
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var body exception.CustomError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, exception.UserNotArchived, body.Code)
}
