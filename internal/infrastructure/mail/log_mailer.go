package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/innstack/hotel-ops/internal/core/ports"
)

// LogMailer logs instead of sending. Used in development, where the setup
// token has to be readable from the process output.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, job ports.MailJob) error {
	m.log.Info().
		Str("kind", string(job.Kind)).
		Str("to", job.To).
		Str("token", job.Token).
		Str("hotel_id", job.HotelID).
		Msg("mail (dev): not sent")
	return nil
}
