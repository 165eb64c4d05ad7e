package cleanup

import "time"

type jobType string
type jobStatus string

const (
	userCleanup jobType = "user cleanup"

	statusComplete jobStatus = "complete"
	statusError    jobStatus = "error"
	statusTimeout  jobStatus = "timeout"
)

type jobConfig struct {
	jobType    jobType
	instanceId string
	timeout    time.Duration
}
