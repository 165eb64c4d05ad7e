package cleanup

import (
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/repository"
	"github.com/Tayttopaikka/tayttopaikka-backend/service"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const (
	defaultCleanupJobTimeout = 4 * time.Hour
	cleanupJobTimeoutBuffer  = 1 * time.Hour
)

type CleanupService interface {
	CreateUserCleanupJob(
		cleanupRepo repository.UserCleanupRepository,
		fillEventRepo repository.FillEventRepository,
		notifications service.CleanupNotificationService,
		lockService service.LockService,
		instanceId string,
		schedule string,
		timezone string,
	) error
}

func NewCleanupService() CleanupService {
	return &cleanupServiceImpl{cron: cron.New()}
}

type cleanupServiceImpl struct {
	cron *cron.Cron
}

func (c *cleanupServiceImpl) CreateUserCleanupJob(
	cleanupRepo repository.UserCleanupRepository,
	fillEventRepo repository.FillEventRepository,
	notifications service.CleanupNotificationService,
	lockService service.LockService,
	instanceId string,
	schedule string,
	timezone string,
) error {
	config := jobConfig{
		jobType:    userCleanup,
		instanceId: instanceId,
		timeout:    c.calculateCleanupJobTimeout(schedule),
	}
	runner := NewJobRunner(
		lockService,
		NewUserCleanupService(cleanupRepo, fillEventRepo, notifications),
		config,
	)
	return c.addCleanupJob(runner, schedule, timezone, userCleanup)
}

// calculateCleanupJobTimeout caps a run so it always ends well before the
// next scheduled one starts.
func (c *cleanupServiceImpl) calculateCleanupJobTimeout(schedule string) time.Duration {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Warnf("Failed to parse cron schedule '%s': %v. Using default timeout.", schedule, err)
		return defaultCleanupJobTimeout
	}

	now := time.Now()
	next1 := sched.Next(now)
	next2 := sched.Next(next1)
	interval := next2.Sub(next1)

	if interval <= cleanupJobTimeoutBuffer {
		return time.Duration(float64(interval) * 0.9)
	}
	timeout := interval - cleanupJobTimeoutBuffer
	if timeout > defaultCleanupJobTimeout {
		timeout = defaultCleanupJobTimeout
	}
	return timeout
}

func (c *cleanupServiceImpl) addCleanupJob(job cron.Job, schedule string, timezone string, jobType jobType) error {
	if len(c.cron.Entries()) == 0 {
		location, err := time.LoadLocation(timezone)
		if err != nil {
			return err
		}
		c.cron = cron.New(cron.WithLocation(location))
		c.cron.Start()
	}
	wrappedJob := cron.NewChain(cron.SkipIfStillRunning(cron.DefaultLogger)).Then(job)
	_, err := c.cron.AddJob(schedule, wrappedJob)
	if err != nil {
		log.Warnf("%s job wasn't added for schedule - %s. With error - %s", jobType, schedule, err)
		return err
	}
	log.Infof("%s job was created with schedule - %s", jobType, schedule)

	return nil
}
