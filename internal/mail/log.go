package mail

import (
	"context"

	"github.com/dtroode/texcode-accounts/internal/logger"
	"github.com/dtroode/texcode-accounts/internal/model"
)

var _ model.Mailer = (*Log)(nil)

// Log writes messages to the application log. Intended for development.
type Log struct {
	logger *logger.Logger
}

// NewLog creates Log mailer.
func NewLog(l *logger.Logger) *Log {
	return &Log{logger: l}
}

func (l *Log) Send(_ context.Context, msg model.Message) error {
	l.logger.Info("Mail: message", "to", msg.To, "subject", msg.Subject, "html", msg.HTML)
	return nil
}
