package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service implements the Metrics interface using Prometheus.
type Service struct {
	MatchesStarted     prometheus.Counter
	MatchesFinished    prometheus.Counter
	EventsRecorded     prometheus.Counter
	NarrativeGenerated prometheus.Counter
	NarrativeFailed    prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
