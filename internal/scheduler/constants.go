package scheduler

const (
	LogMsgEffectFired     = "Scheduled effect fired"
	LogMsgFlushingEffects = "Flushing pending effects on shutdown"
)
