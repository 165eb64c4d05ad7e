package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Tayttopaikka/tayttopaikka-backend/entity"
	"github.com/Tayttopaikka/tayttopaikka-backend/exception"
	"github.com/Tayttopaikka/tayttopaikka-backend/repository"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
	"github.com/go-pg/pg/v10"
	log "github.com/sirupsen/logrus"
)

type ArchivedUsersService interface {
	GetArchivedUsers(ctx context.Context) ([]view.ArchivedUser, error)
	UnarchiveUser(ctx context.Context, userId string, adminId string) error
	GetCleanupHistory(ctx context.Context, userId string) ([]view.CleanupAuditEntry, error)
}

func NewArchivedUsersService(cleanupRepo repository.UserCleanupRepository) ArchivedUsersService {
	return &archivedUsersServiceImpl{cleanupRepo: cleanupRepo}
}

type archivedUsersServiceImpl struct {
	cleanupRepo repository.UserCleanupRepository
}

func (a *archivedUsersServiceImpl) GetArchivedUsers(ctx context.Context) ([]view.ArchivedUser, error) {
	entities, err := a.cleanupRepo.GetArchivedUsersWithDetails(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]view.ArchivedUser, 0, len(entities))
	for i := range entities {
		result = append(result, *entity.MakeArchivedUserView(&entities[i]))
	}
	return result, nil
}

// UnarchiveUser restores an archived account. The row is locked for the
// duration of the transaction so a concurrent cleanup run cannot anonymize
// the user halfway through the restore.
func (a *archivedUsersServiceImpl) UnarchiveUser(ctx context.Context, userId string, adminId string) error {
	return a.cleanupRepo.InTransaction(ctx, func(tx *pg.Tx) error {
		user, err := a.cleanupRepo.GetUserForUpdateTx(tx, userId)
		if err != nil {
			return err
		}
		if user == nil || user.DeletedAt != nil || user.ArchivedAt == nil {
			return &exception.CustomError{
				Status:  http.StatusNotFound,
				Code:    exception.UserNotArchived,
				Message: exception.UserNotArchivedMsg,
				Params:  map[string]interface{}{"userId": userId},
			}
		}

		archivedAt := *user.ArchivedAt
		if err := a.cleanupRepo.UnarchiveUserTx(tx, userId); err != nil {
			return err
		}

		err = a.cleanupRepo.LogCleanupActionTx(tx, &entity.CleanupAuditEntity{
			UserId:            userId,
			Action:            string(view.ActionUnarchive),
			Reason:            fmt.Sprintf("User manually unarchived by admin. Was archived at: %s", archivedAt.Format("2006-01-02T15:04:05Z07:00")),
			LastLoginDate:     &user.LastLogin,
			PerformedByUserId: &adminId,
		})
		if err != nil {
			return err
		}

		log.Infof("User %s unarchived by admin %s", userId, adminId)
		return nil
	})
}

func (a *archivedUsersServiceImpl) GetCleanupHistory(ctx context.Context, userId string) ([]view.CleanupAuditEntry, error) {
	entries, err := a.cleanupRepo.GetAuditEntriesForUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	result := make([]view.CleanupAuditEntry, 0, len(entries))
	for i := range entries {
		result = append(result, *entity.MakeCleanupAuditView(&entries[i]))
	}
	return result, nil
}
