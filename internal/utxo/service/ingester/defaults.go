package ingester

import "time"

const (
	defaultWorkerCount = 8
	defaultBatchSize   = 100

	sleepDuration     = 5 * time.Second
	idleSleepDuration = 30 * time.Second
)
