package entity

import (
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/view"
)

// CleanupAuditEntity rows are append-only. They are the system of record for
// idempotency across cleanup runs and for the compliance audit trail.
type CleanupAuditEntity struct {
	tableName struct{} `pg:"user_cleanup_audit, alias:user_cleanup_audit"`

	Id                string     `pg:"id, pk, type:uuid"`
	UserId            string     `pg:"user_id, type:uuid"`
	Action            string     `pg:"action, type:varchar(50)"`
	Reason            string     `pg:"reason, type:text"`
	LastLoginDate     *time.Time `pg:"last_login_date, type:timestamptz"`
	ExecutedAt        time.Time  `pg:"executed_at, type:timestamptz"`
	PerformedByUserId *string    `pg:"performed_by_user_id, type:uuid"`
}

func MakeCleanupAuditView(ent *CleanupAuditEntity) *view.CleanupAuditEntry {
	return &view.CleanupAuditEntry{
		Id:                ent.Id,
		UserId:            ent.UserId,
		Action:            view.CleanupAction(ent.Action),
		Reason:            ent.Reason,
		LastLoginDate:     ent.LastLoginDate,
		ExecutedAt:        ent.ExecutedAt,
		PerformedByUserId: ent.PerformedByUserId,
	}
}
