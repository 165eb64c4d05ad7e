package repository

import (
	"context"
	"strings"

	"github.com/Tayttopaikka/tayttopaikka-backend/db"
	"github.com/Tayttopaikka/tayttopaikka-backend/entity"
	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user *entity.UserEntity) error
	GetUserById(ctx context.Context, userId string) (*entity.UserEntity, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.UserEntity, error)
	GetUsers(ctx context.Context, includeArchived bool) ([]entity.UserEntity, error)
	UpdateUserInfo(ctx context.Context, user *entity.UserEntity) error
}

func NewUserRepository(cp db.ConnectionProvider) UserRepository {
	return &userRepositoryImpl{cp: cp}
}

type userRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (u userRepositoryImpl) SaveUser(ctx context.Context, user *entity.UserEntity) error {
	if user.Email != nil {
		lowered := strings.ToLower(*user.Email)
		user.Email = &lowered
	}
	_, err := u.cp.GetConnection().ModelContext(ctx, user).Insert()
	return err
}

func (u userRepositoryImpl) GetUserById(ctx context.Context, userId string) (*entity.UserEntity, error) {
	var user entity.UserEntity
	err := u.cp.GetConnection().ModelContext(ctx, &user).
		Where("id = ?", userId).
		First()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (u userRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (*entity.UserEntity, error) {
	var user entity.UserEntity
	err := u.cp.GetConnection().ModelContext(ctx, &user).
		Where("lower(email) = lower(?)", email).
		First()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (u userRepositoryImpl) GetUsers(ctx context.Context, includeArchived bool) ([]entity.UserEntity, error) {
	var users []entity.UserEntity
	query := u.cp.GetConnection().ModelContext(ctx, &users).
		Where("deleted_at is null")
	if !includeArchived {
		query = query.Where("archived_at is null")
	}
	err := query.Order("surname ASC").Select()
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (u userRepositoryImpl) UpdateUserInfo(ctx context.Context, user *entity.UserEntity) error {
	_, err := u.cp.GetConnection().ModelContext(ctx, user).
		Column("email", "phone_number", "forename", "surname").
		WherePK().
		Update()
	return err
}
