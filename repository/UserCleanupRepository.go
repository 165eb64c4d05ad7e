package repository

import (
	"context"
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/db"
	"github.com/Tayttopaikka/tayttopaikka-backend/entity"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
	"github.com/go-pg/pg/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// monthsSince counts whole calendar months between a timestamp column and
// now. The candidate filters and the reported month counts both use this
// exact expression so a user can never match a threshold the projection
// disagrees with.
const monthsSinceLastLogin = "(date_part('year', age(now(), u.last_login)) * 12 + date_part('month', age(now(), u.last_login)))::int"
const monthsSinceArchivedAt = "(date_part('year', age(now(), u.archived_at)) * 12 + date_part('month', age(now(), u.archived_at)))::int"

type UserCleanupRepository interface {
	GetInactiveUsers(ctx context.Context, monthsInactive int, excludeArchived bool, excludeDeleted bool) ([]entity.InactiveUserEntity, error)
	GetUsersArchivedForMonths(ctx context.Context, monthsSinceArchive int) ([]entity.InactiveUserEntity, error)
	GetArchivedUsersWithDetails(ctx context.Context) ([]entity.ArchivedUserEntity, error)

	HasCleanupActionBeenPerformed(ctx context.Context, userId string, action view.CleanupAction) (bool, error)
	HasCleanupActionBeenPerformedTx(tx *pg.Tx, userId string, action view.CleanupAction) (bool, error)
	GetAuditEntriesForUser(ctx context.Context, userId string) ([]entity.CleanupAuditEntity, error)
	LogCleanupAction(ctx context.Context, ent *entity.CleanupAuditEntity) error
	LogCleanupActionTx(tx *pg.Tx, ent *entity.CleanupAuditEntity) error

	InTransaction(ctx context.Context, fn func(tx *pg.Tx) error) error
	ArchiveUserTx(tx *pg.Tx, userId string) error
	AnonymizeUserTx(tx *pg.Tx, userId string) error
	UnarchiveUserTx(tx *pg.Tx, userId string) error
	GetUserForUpdateTx(tx *pg.Tx, userId string) (*entity.UserEntity, error)
}

func NewUserCleanupRepository(cp db.ConnectionProvider) UserCleanupRepository {
	return &userCleanupRepositoryImpl{cp: cp}
}

type userCleanupRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (r userCleanupRepositoryImpl) GetInactiveUsers(ctx context.Context, monthsInactive int, excludeArchived bool, excludeDeleted bool) ([]entity.InactiveUserEntity, error) {
	query := `
		select u.id, u.email, u.forename, u.surname, u.last_login, u.archived_at,
			` + monthsSinceLastLogin + ` as months_inactive
		from user_account u
		where ` + monthsSinceLastLogin + ` >= ?`
	if excludeArchived {
		query += ` and u.archived_at is null`
	}
	if excludeDeleted {
		query += ` and u.deleted_at is null`
	}
	query += ` order by u.last_login asc`

	var result []entity.InactiveUserEntity
	_, err := r.cp.GetConnection().QueryContext(ctx, &result, query, monthsInactive)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query inactive users")
	}
	return result, nil
}

func (r userCleanupRepositoryImpl) GetUsersArchivedForMonths(ctx context.Context, monthsSinceArchive int) ([]entity.InactiveUserEntity, error) {
	query := `
		select u.id, u.email, u.forename, u.surname, u.last_login, u.archived_at,
			` + monthsSinceLastLogin + ` as months_inactive,
			` + monthsSinceArchivedAt + ` as months_since_archive
		from user_account u
		where u.archived_at is not null
			and u.deleted_at is null
			and ` + monthsSinceArchivedAt + ` >= ?
		order by u.archived_at asc`

	var result []entity.InactiveUserEntity
	_, err := r.cp.GetConnection().QueryContext(ctx, &result, query, monthsSinceArchive)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query archived users")
	}
	return result, nil
}

func (r userCleanupRepositoryImpl) GetArchivedUsersWithDetails(ctx context.Context) ([]entity.ArchivedUserEntity, error) {
	query := `
		select u.id, u.email, u.forename, u.surname, u.last_login, u.archived_at,
			` + monthsSinceLastLogin + ` as months_inactive,
			(
				select count(*)
				from fill_event fe
				where fe.user_id = u.id
					and not exists (
						select 1
						from fill_event_payment_event fepe
						join payment_event pe on pe.id = fepe.payment_event_id
						where fepe.fill_event_id = fe.id
							and pe.status = 'COMPLETED'
					)
			)::int as unpaid_invoices_count
		from user_account u
		where u.archived_at is not null
			and u.deleted_at is null
		order by u.archived_at desc`

	var result []entity.ArchivedUserEntity
	_, err := r.cp.GetConnection().QueryContext(ctx, &result, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query archived user details")
	}
	return result, nil
}

func (r userCleanupRepositoryImpl) HasCleanupActionBeenPerformed(ctx context.Context, userId string, action view.CleanupAction) (bool, error) {
	count, err := r.cp.GetConnection().ModelContext(ctx, &entity.CleanupAuditEntity{}).
		Where("user_id = ?", userId).
		Where("action = ?", string(action)).
		Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r userCleanupRepositoryImpl) HasCleanupActionBeenPerformedTx(tx *pg.Tx, userId string, action view.CleanupAction) (bool, error) {
	count, err := tx.Model(&entity.CleanupAuditEntity{}).
		Where("user_id = ?", userId).
		Where("action = ?", string(action)).
		Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r userCleanupRepositoryImpl) GetAuditEntriesForUser(ctx context.Context, userId string) ([]entity.CleanupAuditEntity, error) {
	var result []entity.CleanupAuditEntity
	err := r.cp.GetConnection().ModelContext(ctx, &result).
		Where("user_id = ?", userId).
		Order("executed_at ASC").
		Select()
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r userCleanupRepositoryImpl) LogCleanupAction(ctx context.Context, ent *entity.CleanupAuditEntity) error {
	fillAuditDefaults(ent)
	_, err := r.cp.GetConnection().ModelContext(ctx, ent).Insert()
	return err
}

func (r userCleanupRepositoryImpl) LogCleanupActionTx(tx *pg.Tx, ent *entity.CleanupAuditEntity) error {
	fillAuditDefaults(ent)
	_, err := tx.Model(ent).Insert()
	return err
}

func fillAuditDefaults(ent *entity.CleanupAuditEntity) {
	if ent.Id == "" {
		ent.Id = uuid.New().String()
	}
	if ent.ExecutedAt.IsZero() {
		ent.ExecutedAt = time.Now()
	}
}

func (r userCleanupRepositoryImpl) InTransaction(ctx context.Context, fn func(tx *pg.Tx) error) error {
	return r.cp.GetConnection().RunInTransaction(ctx, fn)
}

func (r userCleanupRepositoryImpl) ArchiveUserTx(tx *pg.Tx, userId string) error {
	_, err := tx.Model(&entity.UserEntity{}).
		Set("archived_at = now()").
		Where("id = ?", userId).
		Where("deleted_at is null").
		Update()
	return err
}

// AnonymizeUserTx clears the PII fields, marks the account deleted and hides
// the user's cylinder sets. The audit row is written separately by the
// caller inside the same transaction.
func (r userCleanupRepositoryImpl) AnonymizeUserTx(tx *pg.Tx, userId string) error {
	_, err := tx.Model(&entity.UserEntity{}).
		Set("email = null").
		Set("phone_number = null").
		Set("forename = null").
		Set("surname = null").
		Set("deleted_at = now()").
		Where("id = ?", userId).
		Update()
	if err != nil {
		return err
	}
	_, err = tx.Model(&entity.DivingCylinderSetEntity{}).
		Set("archived = true").
		Where("owner = ?", userId).
		Update()
	return err
}

func (r userCleanupRepositoryImpl) UnarchiveUserTx(tx *pg.Tx, userId string) error {
	_, err := tx.Model(&entity.UserEntity{}).
		Set("archived_at = null").
		Where("id = ?", userId).
		Update()
	if err != nil {
		return err
	}
	_, err = tx.Model(&entity.DivingCylinderSetEntity{}).
		Set("archived = false").
		Where("owner = ?", userId).
		Update()
	return err
}

func (r userCleanupRepositoryImpl) GetUserForUpdateTx(tx *pg.Tx, userId string) (*entity.UserEntity, error) {
	var user entity.UserEntity
	err := tx.Model(&user).
		Where("id = ?", userId).
		For("UPDATE").
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
