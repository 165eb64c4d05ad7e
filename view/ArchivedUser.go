package view

import "time"

// ArchivedUser is the admin-facing detail record for archived but not yet
// anonymized accounts.
type ArchivedUser struct {
	Id                  string    `json:"id"`
	Email               *string   `json:"email"`
	Forename            *string   `json:"forename"`
	Surname             *string   `json:"surname"`
	LastLogin           time.Time `json:"lastLogin"`
	ArchivedAt          time.Time `json:"archivedAt"`
	MonthsInactive      int       `json:"monthsInactive"`
	UnpaidInvoicesCount int       `json:"unpaidInvoicesCount"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
