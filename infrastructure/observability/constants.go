package observability

// Metric name prefixes
const (
	MetricPrefix = "streambot"
)

// Metric names
const (
	DuelsStartedTotal      = MetricPrefix + ".duels.started"
	DuelsActive            = MetricPrefix + ".duels.active"
	DuelsResolvedTotal     = MetricPrefix + ".duels.resolved"
	DuelsExpiredTotal      = MetricPrefix + ".duels.expired"
	PointsTransferredTotal = MetricPrefix + ".points.transferred"
)

// Label keys
const (
	LabelOutcome = "outcome"
	LabelStage   = "stage"
)
