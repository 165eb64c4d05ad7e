package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/entity"
	"github.com/Tayttopaikka/tayttopaikka-backend/exception"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
	"github.com/go-pg/pg/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserCleanupRepo struct {
	users         map[string]*entity.UserEntity
	archivedUsers []entity.ArchivedUserEntity
	auditEntries  []entity.CleanupAuditEntity
	unarchivedIds []string
	anonymizedIds []string
}

func (f *fakeUserCleanupRepo) GetInactiveUsers(ctx context.Context, monthsInactive int, excludeArchived bool, excludeDeleted bool) ([]entity.InactiveUserEntity, error) {
	return nil, nil
}

func (f *fakeUserCleanupRepo) GetUsersArchivedForMonths(ctx context.Context, monthsSinceArchive int) ([]entity.InactiveUserEntity, error) {
	return nil, nil
}

func (f *fakeUserCleanupRepo) GetArchivedUsersWithDetails(ctx context.Context) ([]entity.ArchivedUserEntity, error) {
	return f.archivedUsers, nil
}

func (f *fakeUserCleanupRepo) HasCleanupActionBeenPerformed(ctx context.Context, userId string, action view.CleanupAction) (bool, error) {
	return false, nil
}

func (f *fakeUserCleanupRepo) HasCleanupActionBeenPerformedTx(tx *pg.Tx, userId string, action view.CleanupAction) (bool, error) {
	return false, nil
}

func (f *fakeUserCleanupRepo) GetAuditEntriesForUser(ctx context.Context, userId string) ([]entity.CleanupAuditEntity, error) {
	var result []entity.CleanupAuditEntity
	for _, e := range f.auditEntries {
		if e.UserId == userId {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeUserCleanupRepo) LogCleanupAction(ctx context.Context, ent *entity.CleanupAuditEntity) error {
	f.auditEntries = append(f.auditEntries, *ent)
	return nil
}

func (f *fakeUserCleanupRepo) LogCleanupActionTx(tx *pg.Tx, ent *entity.CleanupAuditEntity) error {
	f.auditEntries = append(f.auditEntries, *ent)
	return nil
}

func (f *fakeUserCleanupRepo) InTransaction(ctx context.Context, fn func(tx *pg.Tx) error) error {
	return fn(nil)
}

func (f *fakeUserCleanupRepo) ArchiveUserTx(tx *pg.Tx, userId string) error {
	return nil
}

func (f *fakeUserCleanupRepo) AnonymizeUserTx(tx *pg.Tx, userId string) error {
	f.anonymizedIds = append(f.anonymizedIds, userId)
	if u, ok := f.users[userId]; ok {
		deletedAt := time.Now()
		u.Email = nil
		u.DeletedAt = &deletedAt
	}
	return nil
}

func (f *fakeUserCleanupRepo) UnarchiveUserTx(tx *pg.Tx, userId string) error {
	f.unarchivedIds = append(f.unarchivedIds, userId)
	if u, ok := f.users[userId]; ok {
		u.ArchivedAt = nil
	}
	return nil
}

func (f *fakeUserCleanupRepo) GetUserForUpdateTx(tx *pg.Tx, userId string) (*entity.UserEntity, error) {
	return f.users[userId], nil
}

func archivedUserEntity(id string) *entity.UserEntity {
	archivedAt := time.Now().AddDate(0, -2, 0)
	email := id + "@example.com"
	return &entity.UserEntity{
		Id:         id,
		Email:      &email,
		LastLogin:  time.Now().AddDate(-4, 0, 0),
		ArchivedAt: &archivedAt,
	}
}

func TestUnarchiveUserClearsArchiveAndWritesAudit(t *testing.T) {
	repo := &fakeUserCleanupRepo{users: map[string]*entity.UserEntity{
		"u1": archivedUserEntity("u1"),
	}}
	svc := NewArchivedUsersService(repo)

	err := svc.UnarchiveUser(context.Background(), "u1", "admin-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"u1"}, repo.unarchivedIds)
	require.Len(t, repo.auditEntries, 1)
	entry := repo.auditEntries[0]
	assert.Equal(t, string(view.ActionUnarchive), entry.Action)
	require.NotNil(t, entry.PerformedByUserId)
	assert.Equal(t, "admin-1", *entry.PerformedByUserId)
	assert.Contains(t, entry.Reason, "manually unarchived")
}

func TestUnarchiveUnknownUserReturnsNotFound(t *testing.T) {
	repo := &fakeUserCleanupRepo{users: map[string]*entity.UserEntity{}}
	svc := NewArchivedUsersService(repo)

	err := svc.UnarchiveUser(context.Background(), "missing", "admin-1")
	require.Error(t, err)

	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, customError.Status)
	assert.Equal(t, exception.UserNotArchived, customError.Code)
}

func TestUnarchiveNotArchivedUserReturnsNotFound(t *testing.T) {
	user := archivedUserEntity("u1")
	user.ArchivedAt = nil
	repo := &fakeUserCleanupRepo{users: map[string]*entity.UserEntity{"u1": user}}
	svc := NewArchivedUsersService(repo)

	err := svc.UnarchiveUser(context.Background(), "u1", "admin-1")
	require.Error(t, err)

	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, customError.Status)
	assert.Empty(t, repo.unarchivedIds)
}

func TestUnarchiveAnonymizedUserReturnsNotFound(t *testing.T) {
	user := archivedUserEntity("u1")
	deletedAt := time.Now()
	user.DeletedAt = &deletedAt
	repo := &fakeUserCleanupRepo{users: map[string]*entity.UserEntity{"u1": user}}
	svc := NewArchivedUsersService(repo)

	err := svc.UnarchiveUser(context.Background(), "u1", "admin-1")
	require.Error(t, err)

	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, customError.Status)
}

func TestDoubleUnarchiveSecondCallFails(t *testing.T) {
	repo := &fakeUserCleanupRepo{users: map[string]*entity.UserEntity{
		"u1": archivedUserEntity("u1"),
	}}
	svc := NewArchivedUsersService(repo)

	require.NoError(t, svc.UnarchiveUser(context.Background(), "u1", "admin-1"))

	err := svc.UnarchiveUser(context.Background(), "u1", "admin-1")
	require.Error(t, err)
	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, customError.Status)
	assert.Len(t, repo.unarchivedIds, 1)
}

func TestGetArchivedUsersMapsEntities(t *testing.T) {
	email := "u1@example.com"
	repo := &fakeUserCleanupRepo{archivedUsers: []entity.ArchivedUserEntity{
		{
			Id:                  "u1",
			Email:               &email,
			LastLogin:           time.Now().AddDate(-4, 0, 0),
			ArchivedAt:          time.Now().AddDate(0, -3, 0),
			MonthsInactive:      40,
			UnpaidInvoicesCount: 2,
		},
	}}
	svc := NewArchivedUsersService(repo)

	users, err := svc.GetArchivedUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].Id)
	assert.Equal(t, 40, users[0].MonthsInactive)
	assert.Equal(t, 2, users[0].UnpaidInvoicesCount)
}
