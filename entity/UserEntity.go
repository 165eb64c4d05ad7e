package entity

import (
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/view"
)

type UserEntity struct {
	tableName struct{} `pg:"user_account, alias:user_account"`

	Id           string     `pg:"id, pk, type:uuid"`
	Email        *string    `pg:"email, type:varchar"`
	PhoneNumber  *string    `pg:"phone_number, type:varchar"`
	Forename     *string    `pg:"forename, type:varchar"`
	Surname      *string    `pg:"surname, type:varchar"`
	PasswordHash []byte     `pg:"password_hash, type:bytea"`
	IsAdmin      bool       `pg:"is_admin, use_zero"`
	IsBlender    bool       `pg:"is_blender, use_zero"`
	LastLogin    time.Time  `pg:"last_login, type:timestamptz"`
	ArchivedAt   *time.Time `pg:"archived_at, type:timestamptz"`
	DeletedAt    *time.Time `pg:"deleted_at, type:timestamptz"`
}

// InactiveUserEntity is the projection returned by the cleanup candidate
// queries. Month counts come from the database so that the threshold filter
// and the reported value always agree.
type InactiveUserEntity struct {
	Id                 string     `pg:"id"`
	Email              *string    `pg:"email"`
	Forename           *string    `pg:"forename"`
	Surname            *string    `pg:"surname"`
	LastLogin          time.Time  `pg:"last_login"`
	ArchivedAt         *time.Time `pg:"archived_at"`
	MonthsInactive     int        `pg:"months_inactive"`
	MonthsSinceArchive int        `pg:"months_since_archive"`
}

type ArchivedUserEntity struct {
	Id                  string    `pg:"id"`
	Email               *string   `pg:"email"`
	Forename            *string   `pg:"forename"`
	Surname             *string   `pg:"surname"`
	LastLogin           time.Time `pg:"last_login"`
	ArchivedAt          time.Time `pg:"archived_at"`
	MonthsInactive      int       `pg:"months_inactive"`
	UnpaidInvoicesCount int       `pg:"unpaid_invoices_count"`
}

func MakeUserView(ent *UserEntity) *view.User {
	return &view.User{
		Id:          ent.Id,
		Email:       ent.Email,
		PhoneNumber: ent.PhoneNumber,
		Forename:    ent.Forename,
		Surname:     ent.Surname,
		IsAdmin:     ent.IsAdmin,
		IsBlender:   ent.IsBlender,
		LastLogin:   ent.LastLogin,
		ArchivedAt:  ent.ArchivedAt,
		DeletedAt:   ent.DeletedAt,
	}
}

func MakeInactiveUserView(ent *InactiveUserEntity) *view.InactiveUser {
	return &view.InactiveUser{
		Id:                 ent.Id,
		Email:              ent.Email,
		Forename:           ent.Forename,
		Surname:            ent.Surname,
		LastLogin:          ent.LastLogin,
		ArchivedAt:         ent.ArchivedAt,
		MonthsInactive:     ent.MonthsInactive,
		MonthsSinceArchive: ent.MonthsSinceArchive,
	}
}

func MakeArchivedUserView(ent *ArchivedUserEntity) *view.ArchivedUser {
	return &view.ArchivedUser{
		Id:                  ent.Id,
		Email:               ent.Email,
		Forename:            ent.Forename,
		Surname:             ent.Surname,
		LastLogin:           ent.LastLogin,
		ArchivedAt:          ent.ArchivedAt,
		MonthsInactive:      ent.MonthsInactive,
		UnpaidInvoicesCount: ent.UnpaidInvoicesCount,
	}
}
