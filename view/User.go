package view

import "time"

type User struct {
	Id          string     `json:"id"`
	Email       *string    `json:"email"`
	PhoneNumber *string    `json:"phoneNumber"`
	Forename    *string    `json:"forename"`
	Surname     *string    `json:"surname"`
	IsAdmin     bool       `json:"isAdmin"`
	IsBlender   bool       `json:"isBlender"`
	LastLogin   time.Time  `json:"lastLogin"`
	ArchivedAt  *time.Time `json:"archivedAt,omitempty"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

type Users struct {
	Users []User `json:"users"`
}

type CreateUserReq struct {
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Forename    string `json:"forename" validate:"required"`
	Surname     string `json:"surname" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
}

type UpdateUserReq struct {
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber"`
	Forename    *string `json:"forename"`
	Surname     *string `json:"surname"`
}

// InactiveUser is a read-only projection used by the cleanup stages.
// MonthsInactive and MonthsSinceArchive are calculated by the database
// with the same month-truncation expression the candidate filters use.
type InactiveUser struct {
	Id                 string     `json:"id"`
	Email              *string    `json:"email"`
	Forename           *string    `json:"forename"`
	Surname            *string    `json:"surname"`
	LastLogin          time.Time  `json:"lastLogin"`
	ArchivedAt         *time.Time `json:"archivedAt"`
	MonthsInactive     int        `json:"monthsInactive"`
	MonthsSinceArchive int        `json:"monthsSinceArchive,omitempty"`
}
