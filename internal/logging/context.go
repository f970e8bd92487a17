package logging

import "context"

type logDataKeyType struct{}

// LogDataKey carries a request's LogData through the context. Exported so the
// HTTP layer can attach it with huma's context helpers.
var LogDataKey = logDataKeyType{}

// WithLogData attaches a LogData to the context.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, LogDataKey, logData)
}

// GetLogData returns the request's LogData, or nil when none is attached
// (unit tests call handlers without the middleware).
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(LogDataKey).(*LogData)
	return logData
}
