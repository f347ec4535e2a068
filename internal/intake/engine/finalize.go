package engine

import (
	"context"

	"github.com/wardline/server/internal/intake/model"
	logx "github.com/wardline/server/pkg/logger"
)

// Persister stores one completed registration record. Implementations report
// any internal failure as an error and never panic past this boundary.
type Persister interface {
	Persist(ctx context.Context, payload model.WebhookPayload) error
}

// Notifier delivers one completed registration record to an external system.
type Notifier interface {
	Notify(ctx context.Context, payload model.WebhookPayload) error
}

// Finalizer persists a completed registration at most once and then fires
// the outbound notification. Durable record first, best-effort notify: a
// failed delivery never unwinds DBWritten.
type Finalizer struct {
	store    Persister
	notifier Notifier
}

func NewFinalizer(store Persister, notifier Notifier) *Finalizer {
	return &Finalizer{store: store, notifier: notifier}
}

// Finalize runs only when the session is complete and not yet written. All
// failures are logged and absorbed; a persistence failure leaves DBWritten
// false so a later turn reaches this branch again and retries.
func (f *Finalizer) Finalize(ctx context.Context, s *model.SessionState) {
	if !s.IsComplete || s.DBWritten {
		return
	}

	payload, err := model.NewWebhookPayload(s.Patient, s.Ward)
	if err != nil {
		logx.Error().Err(err).Str("session_id", s.SessionID).Msg("refusing to finalize incomplete registration")
		return
	}

	if err := f.store.Persist(ctx, payload); err != nil {
		logx.Error().Err(err).Str("session_id", s.SessionID).Msg("failed to persist registration")
		return
	}
	s.DBWritten = true

	if err := f.notifier.Notify(ctx, payload); err != nil {
		logx.Warn().Err(err).Str("session_id", s.SessionID).Msg("registration webhook failed")
	}
}
