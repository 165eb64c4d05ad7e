package view

import "time"

type CleanupAction string

const (
	ActionWarn34Months         CleanupAction = "warn_34_months"
	ActionArchive36Months      CleanupAction = "archive_36_months"
	ActionWarn47Months         CleanupAction = "warn_47_months"
	ActionAnonymize48Months    CleanupAction = "anonymize_48_months"
	ActionSkippedUnpaidInvoice CleanupAction = "skipped_unpaid_invoice"
	ActionUnarchive            CleanupAction = "unarchive"
	ActionUserDeleted          CleanupAction = "user_deleted"
)

// CleanupAuditEntry is an immutable record of a retention action taken for a
// user. PerformedByUserId is nil for actions taken by the scheduled job and
// holds the admin's id for manual actions (unarchive).
type CleanupAuditEntry struct {
	Id                string        `json:"id"`
	UserId            string        `json:"userId"`
	Action            CleanupAction `json:"action"`
	Reason            string        `json:"reason,omitempty"`
	LastLoginDate     *time.Time    `json:"lastLoginDate,omitempty"`
	ExecutedAt        time.Time     `json:"executedAt"`
	PerformedByUserId *string       `json:"performedByUserId,omitempty"`
}
