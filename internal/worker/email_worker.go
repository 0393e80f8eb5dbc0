package worker

import (
	"context"
	"encoding/json"

	"tienda/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailWorker delivers password-reset emails dequeued from Redis.
// Delivery is best-effort: a failed send is logged and dropped, the user can
// simply request another reset.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Handle(_ context.Context, payload json.RawMessage) {
	var job ResetEmailPayload
	if err := json.Unmarshal(payload, &job); err != nil {
		log.Error().Err(err).Msg("email_worker: bad payload")
		return
	}

	if !w.mailer.Configured() {
		log.Warn().Str("to", job.Email).Msg("email_worker: SMTP not configured, dropping reset email")
		return
	}

	if err := w.mailer.SendResetLink(job.Email, job.Nombre, job.Token); err != nil {
		log.Error().Err(err).Str("to", job.Email).Msg("email_worker: send failed")
		return
	}
	log.Info().Str("to", job.Email).Msg("email_worker: reset email sent")
}
