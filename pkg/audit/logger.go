package audit

import (
	"go.uber.org/zap"
)

type LoggerAudit struct {
	Logger *zap.SugaredLogger
}

var _ Audit = (*LoggerAudit)(nil)

func NewLoggerAudit(logger *zap.SugaredLogger) *LoggerAudit {
	return &LoggerAudit{Logger: logger}
}

func (d *LoggerAudit) Write(e *ExportData) error {
	d.Logger.Infow("AUDIT",
		"Chart", e.Chart,
		"Format", e.Format,
		"User", e.User,
		"Timestamp", e.Timestamp,
	)
	return nil
}
