package cleanup

import (
	"context"
	"fmt"

	"github.com/Tayttopaikka/tayttopaikka-backend/entity"
	"github.com/Tayttopaikka/tayttopaikka-backend/metrics"
	"github.com/Tayttopaikka/tayttopaikka-backend/repository"
	"github.com/Tayttopaikka/tayttopaikka-backend/service"
	"github.com/Tayttopaikka/tayttopaikka-backend/service/cleanup/logger"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
)

const (
	warnAfterMonths             = 34
	archiveAfterMonths          = 36
	anonymizeAfterArchiveMonths = 12
)

// UserCleanupService is the retention policy engine. One run walks the three
// lifecycle stages in order; per-user failures are logged and skipped, a
// failure of a whole stage aborts the run and is retried on the next
// scheduled invocation. The audit table makes every automated action
// idempotent across runs.
type UserCleanupService interface {
	RunUserCleanup(ctx context.Context) error
}

func NewUserCleanupService(
	cleanupRepo repository.UserCleanupRepository,
	fillEventRepo repository.FillEventRepository,
	notifications service.CleanupNotificationService,
) UserCleanupService {
	return &userCleanupServiceImpl{
		cleanupRepo:   cleanupRepo,
		fillEventRepo: fillEventRepo,
		notifications: notifications,
	}
}

type userCleanupServiceImpl struct {
	cleanupRepo   repository.UserCleanupRepository
	fillEventRepo repository.FillEventRepository
	notifications service.CleanupNotificationService
}

func (c *userCleanupServiceImpl) RunUserCleanup(ctx context.Context) error {
	if err := c.processUsersAt34Months(ctx); err != nil {
		return errors.Wrap(err, "34-month warning stage failed")
	}
	if err := c.processUsersAt36Months(ctx); err != nil {
		return errors.Wrap(err, "36-month archive stage failed")
	}
	if err := c.processUsersAt48Months(ctx); err != nil {
		return errors.Wrap(err, "48-month anonymize stage failed")
	}
	return nil
}

// processUsersAt34Months sends the first inactivity warning. No transaction
// here: a crash between the email and the audit write only risks a duplicate
// warning on the next run, which is non-destructive.
func (c *userCleanupServiceImpl) processUsersAt34Months(ctx context.Context) error {
	logger.Info(ctx, "Processing users at 34 months of inactivity...")

	users, err := c.cleanupRepo.GetInactiveUsers(ctx, warnAfterMonths, true, true)
	if err != nil {
		return err
	}
	logger.Infof(ctx, "Found %d users inactive for %d+ months", len(users), warnAfterMonths)

	for i := range users {
		user := entity.MakeInactiveUserView(&users[i])
		if err := c.warnInactiveUser(ctx, user); err != nil {
			logger.Errorf(ctx, "Failed to process 34-month warning for user %s: %v", user.Id, err)
			metrics.CleanupUserFailures.WithLabelValues("warn_34").Inc()
		}
	}
	return nil
}

func (c *userCleanupServiceImpl) warnInactiveUser(ctx context.Context, user *view.InactiveUser) error {
	alreadyWarned, err := c.cleanupRepo.HasCleanupActionBeenPerformed(ctx, user.Id, view.ActionWarn34Months)
	if err != nil {
		return err
	}
	if alreadyWarned {
		logger.Debugf(ctx, "User %s already warned at 34 months, skipping", user.Id)
		return nil
	}

	if err := c.notifications.SendInactivityWarning(user); err != nil {
		return err
	}

	lastLogin := user.LastLogin
	err = c.cleanupRepo.LogCleanupAction(ctx, &entity.CleanupAuditEntity{
		UserId:        user.Id,
		Action:        string(view.ActionWarn34Months),
		Reason:        fmt.Sprintf("Sent 34-month inactivity warning. Last login: %s", lastLogin.Format("2006-01-02T15:04:05Z07:00")),
		LastLoginDate: &lastLogin,
	})
	if err != nil {
		return err
	}
	metrics.CleanupActionsTotal.WithLabelValues(string(view.ActionWarn34Months)).Inc()
	logger.Infof(ctx, "Successfully processed 34-month warning for user %s", user.Id)
	return nil
}

func (c *userCleanupServiceImpl) processUsersAt36Months(ctx context.Context) error {
	logger.Info(ctx, "Processing users at 36 months of inactivity...")

	users, err := c.cleanupRepo.GetInactiveUsers(ctx, archiveAfterMonths, true, true)
	if err != nil {
		return err
	}
	logger.Infof(ctx, "Found %d users inactive for %d+ months", len(users), archiveAfterMonths)

	for i := range users {
		user := entity.MakeInactiveUserView(&users[i])
		err := c.cleanupRepo.InTransaction(ctx, func(tx *pg.Tx) error {
			return c.archiveUser(ctx, tx, user)
		})
		if err != nil {
			logger.Errorf(ctx, "Failed to archive user %s: %v", user.Id, err)
			metrics.CleanupUserFailures.WithLabelValues("archive_36").Inc()
		}
	}
	return nil
}

func (c *userCleanupServiceImpl) archiveUser(ctx context.Context, tx *pg.Tx, user *view.InactiveUser) error {
	alreadyArchived, err := c.cleanupRepo.HasCleanupActionBeenPerformedTx(tx, user.Id, view.ActionArchive36Months)
	if err != nil {
		return err
	}
	if alreadyArchived {
		logger.Debugf(ctx, "User %s already archived, skipping", user.Id)
		return nil
	}

	unpaidCount, err := c.fillEventRepo.CountUnpaidFillEvents(ctx, user.Id)
	if err != nil {
		return err
	}
	if unpaidCount > 0 {
		return c.deferForUnpaidInvoices(ctx, tx, user, unpaidCount,
			fmt.Sprintf("User has %d unpaid invoices. Last login: %s", unpaidCount, user.LastLogin.Format("2006-01-02T15:04:05Z07:00")))
	}

	if err := c.cleanupRepo.ArchiveUserTx(tx, user.Id); err != nil {
		return err
	}
	if err := c.notifications.SendArchivedNotification(user); err != nil {
		return err
	}

	lastLogin := user.LastLogin
	err = c.cleanupRepo.LogCleanupActionTx(tx, &entity.CleanupAuditEntity{
		UserId:        user.Id,
		Action:        string(view.ActionArchive36Months),
		Reason:        fmt.Sprintf("User archived after %d months of inactivity. Last login: %s", archiveAfterMonths, lastLogin.Format("2006-01-02T15:04:05Z07:00")),
		LastLoginDate: &lastLogin,
	})
	if err != nil {
		return err
	}
	metrics.CleanupActionsTotal.WithLabelValues(string(view.ActionArchive36Months)).Inc()
	logger.Infof(ctx, "Successfully archived user %s", user.Id)
	return nil
}

func (c *userCleanupServiceImpl) processUsersAt48Months(ctx context.Context) error {
	logger.Info(ctx, "Processing users archived for 12 months...")

	users, err := c.cleanupRepo.GetUsersArchivedForMonths(ctx, anonymizeAfterArchiveMonths)
	if err != nil {
		return err
	}
	logger.Infof(ctx, "Found %d users archived for %d+ months", len(users), anonymizeAfterArchiveMonths)

	for i := range users {
		user := entity.MakeInactiveUserView(&users[i])
		err := c.cleanupRepo.InTransaction(ctx, func(tx *pg.Tx) error {
			return c.anonymizeUser(ctx, tx, user)
		})
		if err != nil {
			logger.Errorf(ctx, "Failed to anonymize user %s: %v", user.Id, err)
			metrics.CleanupUserFailures.WithLabelValues("anonymize_48").Inc()
		}
	}
	return nil
}

func (c *userCleanupServiceImpl) anonymizeUser(ctx context.Context, tx *pg.Tx, user *view.InactiveUser) error {
	alreadyAnonymized, err := c.cleanupRepo.HasCleanupActionBeenPerformedTx(tx, user.Id, view.ActionAnonymize48Months)
	if err != nil {
		return err
	}
	if alreadyAnonymized {
		logger.Debugf(ctx, "User %s already anonymized, skipping", user.Id)
		return nil
	}

	archivedAt := "unknown"
	if user.ArchivedAt != nil {
		archivedAt = user.ArchivedAt.Format("2006-01-02T15:04:05Z07:00")
	}

	unpaidCount, err := c.fillEventRepo.CountUnpaidFillEvents(ctx, user.Id)
	if err != nil {
		return err
	}
	if unpaidCount > 0 {
		return c.deferForUnpaidInvoices(ctx, tx, user, unpaidCount,
			fmt.Sprintf("User has %d unpaid invoices. Admin notified. Archived at: %s", unpaidCount, archivedAt))
	}

	if err := c.cleanupRepo.AnonymizeUserTx(tx, user.Id); err != nil {
		return err
	}

	lastLogin := user.LastLogin
	err = c.cleanupRepo.LogCleanupActionTx(tx, &entity.CleanupAuditEntity{
		UserId:        user.Id,
		Action:        string(view.ActionAnonymize48Months),
		Reason:        fmt.Sprintf("User anonymized after %d months of being archived. Archived at: %s", anonymizeAfterArchiveMonths, archivedAt),
		LastLoginDate: &lastLogin,
	})
	if err != nil {
		return err
	}
	metrics.CleanupActionsTotal.WithLabelValues(string(view.ActionAnonymize48Months)).Inc()
	logger.Infof(ctx, "Successfully anonymized user %s", user.Id)
	return nil
}

// deferForUnpaidInvoices records the policy outcome for a user whose
// transition is blocked by unpaid fill events. Not an error: the audit row
// is committed and the user is retried on the next run.
func (c *userCleanupServiceImpl) deferForUnpaidInvoices(ctx context.Context, tx *pg.Tx, user *view.InactiveUser, unpaidCount int, reason string) error {
	logger.Warnf(ctx, "User %s has %d unpaid invoices, skipping and notifying admin", user.Id, unpaidCount)

	if err := c.notifications.SendUnpaidInvoiceAdminAlert(user, unpaidCount); err != nil {
		return err
	}

	lastLogin := user.LastLogin
	err := c.cleanupRepo.LogCleanupActionTx(tx, &entity.CleanupAuditEntity{
		UserId:        user.Id,
		Action:        string(view.ActionSkippedUnpaidInvoice),
		Reason:        reason,
		LastLoginDate: &lastLogin,
	})
	if err != nil {
		return err
	}
	metrics.CleanupActionsTotal.WithLabelValues(string(view.ActionSkippedUnpaidInvoice)).Inc()
	return nil
}
