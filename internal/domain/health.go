package domain

// HealthStatus indicates doctor check outcomes.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

var healthSeverity = map[HealthStatus]int{HealthOK: 0, HealthWarn: 1, HealthError: 2}

// HealthCheck captures a single diagnostic result. Hint names the setting or
// command that clears a warning or error.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
	Hint    string
}

// HealthReport aggregates checks.
type HealthReport struct {
	Checks []HealthCheck
}

// Worst returns the most severe status in the report, HealthOK when empty.
func (r HealthReport) Worst() HealthStatus {
	worst := HealthOK
	for _, c := range r.Checks {
		if healthSeverity[c.Status] > healthSeverity[worst] {
			worst = c.Status
		}
	}
	return worst
}
