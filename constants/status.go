package constants

// JobStatus is the canonical status for a parse job.
type JobStatus string

// Stable values (store these exact strings).
const (
	JobStatusQueued  JobStatus = "QUEUED"  // accepted, not started
	JobStatusRunning JobStatus = "RUNNING" // in progress
	JobStatusParsed  JobStatus = "PARSED"  // records extracted
	JobStatusFailed  JobStatus = "FAILED"  // terminal failure
)
