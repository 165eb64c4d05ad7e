package service

import (
	"context"
	"net/http"
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/entity"
	"github.com/Tayttopaikka/tayttopaikka-backend/exception"
	"github.com/Tayttopaikka/tayttopaikka-backend/repository"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
	"github.com/go-pg/pg/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type UserService interface {
	CreateUser(ctx context.Context, req *view.CreateUserReq) (*view.User, error)
	GetUser(ctx context.Context, userId string) (*view.User, error)
	GetUsers(ctx context.Context, includeArchived bool) (*view.Users, error)
	UpdateUser(ctx context.Context, userId string, req *view.UpdateUserReq) (*view.User, error)
	DeleteUser(ctx context.Context, userId string) error
}

func NewUserService(userRepo repository.UserRepository, cleanupRepo repository.UserCleanupRepository) UserService {
	return &userServiceImpl{userRepo: userRepo, cleanupRepo: cleanupRepo}
}

type userServiceImpl struct {
	userRepo    repository.UserRepository
	cleanupRepo repository.UserCleanupRepository
}

func (u *userServiceImpl) CreateUser(ctx context.Context, req *view.CreateUserReq) (*view.User, error) {
	existing, err := u.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.EmailAlreadyTaken,
			Message: exception.EmailAlreadyTakenMsg,
			Params:  map[string]interface{}{"email": req.Email},
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	ent := &entity.UserEntity{
		Id:           uuid.New().String(),
		Email:        &req.Email,
		PhoneNumber:  &req.PhoneNumber,
		Forename:     &req.Forename,
		Surname:      &req.Surname,
		PasswordHash: passwordHash,
		LastLogin:    time.Now(),
	}
	if err := u.userRepo.SaveUser(ctx, ent); err != nil {
		return nil, err
	}
	return entity.MakeUserView(ent), nil
}

func (u *userServiceImpl) GetUser(ctx context.Context, userId string) (*view.User, error) {
	ent, err := u.userRepo.GetUserById(ctx, userId)
	if err != nil {
		return nil, err
	}
	if ent == nil || ent.DeletedAt != nil {
		return nil, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.UserNotFound,
			Message: exception.UserNotFoundMsg,
			Params:  map[string]interface{}{"userId": userId},
		}
	}
	return entity.MakeUserView(ent), nil
}

func (u *userServiceImpl) GetUsers(ctx context.Context, includeArchived bool) (*view.Users, error) {
	entities, err := u.userRepo.GetUsers(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	users := make([]view.User, 0, len(entities))
	for i := range entities {
		users = append(users, *entity.MakeUserView(&entities[i]))
	}
	return &view.Users{Users: users}, nil
}

func (u *userServiceImpl) UpdateUser(ctx context.Context, userId string, req *view.UpdateUserReq) (*view.User, error) {
	ent, err := u.userRepo.GetUserById(ctx, userId)
	if err != nil {
		return nil, err
	}
	if ent == nil || ent.DeletedAt != nil {
		return nil, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.UserNotFound,
			Message: exception.UserNotFoundMsg,
			Params:  map[string]interface{}{"userId": userId},
		}
	}

	if req.Email != nil && (ent.Email == nil || *req.Email != *ent.Email) {
		existing, err := u.userRepo.GetUserByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.Id != userId {
			return nil, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.EmailAlreadyTaken,
				Message: exception.EmailAlreadyTakenMsg,
				Params:  map[string]interface{}{"email": *req.Email},
			}
		}
		ent.Email = req.Email
	}
	if req.PhoneNumber != nil {
		ent.PhoneNumber = req.PhoneNumber
	}
	if req.Forename != nil {
		ent.Forename = req.Forename
	}
	if req.Surname != nil {
		ent.Surname = req.Surname
	}

	if err := u.userRepo.UpdateUserInfo(ctx, ent); err != nil {
		return nil, err
	}
	return entity.MakeUserView(ent), nil
}

// DeleteUser anonymizes the account immediately on the user's own request.
// It reuses the retention anonymization path so the PII scrubbing and the
// audit trail stay identical to the scheduled flow.
func (u *userServiceImpl) DeleteUser(ctx context.Context, userId string) error {
	return u.cleanupRepo.InTransaction(ctx, func(tx *pg.Tx) error {
		ent, err := u.cleanupRepo.GetUserForUpdateTx(tx, userId)
		if err != nil {
			return err
		}
		if ent == nil || ent.DeletedAt != nil {
			return &exception.CustomError{
				Status:  http.StatusNotFound,
				Code:    exception.UserNotFound,
				Message: exception.UserNotFoundMsg,
				Params:  map[string]interface{}{"userId": userId},
			}
		}
		if err := u.cleanupRepo.AnonymizeUserTx(tx, userId); err != nil {
			return err
		}
		return u.cleanupRepo.LogCleanupActionTx(tx, &entity.CleanupAuditEntity{
			UserId:            userId,
			Action:            string(view.ActionUserDeleted),
			Reason:            "User anonymized on account deletion request.",
			LastLoginDate:     &ent.LastLogin,
			PerformedByUserId: &userId,
		})
	})
}
