package application

// DuelMetricsRecorder records duel lifecycle metrics
type DuelMetricsRecorder interface {
	RecordDuelStarted()
	RecordDuelResolved(outcome string, transferred int64)
	RecordDuelExpired(stage string)
}
