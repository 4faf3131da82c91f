package db

import "time"

// Database connection constants
const (
	// ConnectionRetrySleep is the sleep duration between connection retries
	ConnectionRetrySleep = 2 * time.Second
	// maxConnectionRetries is the number of retries for initial connection
	maxConnectionRetries = 10
)

// Database pool default constants
const (
	defaultMaxConns          int32         = 4
	defaultMinConns          int32         = 1
	defaultMaxConnIdleTime   time.Duration = 30 * time.Minute
	defaultMaxConnLifetime   time.Duration = time.Hour
	defaultHealthCheckPeriod time.Duration = time.Minute
)

const migrationLockID = 1000

// launchesTable is the table holding imported launch records.
const launchesTable = "launches"

var launchColumns = []string{
	"flight_number",
	"launch_site",
	"payload_mass_kg",
	"class",
	"booster_version",
	"booster_version_category",
}
