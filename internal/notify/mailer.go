package notify

import (
	"context"

	"rental-app-go/pkg/logger"
)

// Mailer is the outbound email sink. Delivery is handled by an external
// system; the default implementation only logs what would be sent.
type Mailer interface {
	Send(ctx context.Context, to, subject string, data map[string]string) error
}

type LogMailer struct {
	log logger.Logger
}

func NewLogMailer(log logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, to, subject string, data map[string]string) error {
	m.log.Info("mail: would send", "to", to, "subject", subject, "fields", len(data))
	return nil
}
