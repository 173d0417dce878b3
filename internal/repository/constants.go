package repository

const (
	LogMsgVersionConflictRetry = "Account version conflict, retrying"
	LogMsgRollbackFailed       = "Failed to rollback transaction"
)
