// Package engine implements the intake conversation state machine: ward
// routing on the first message, deterministic slot filling in name -> age ->
// query order, and one-time finalization when the record is complete.
package engine

import (
	"context"
	"fmt"

	"github.com/wardline/server/internal/intake/model"
	logx "github.com/wardline/server/pkg/logger"
)

// Runner is a thin interface to execute one conversation turn with the
// public TurnInput.
type Runner interface {
	Invoke(ctx context.Context, in model.TurnInput) (string, error)
}

// Config holds everything needed to assemble the intake engine end-to-end.
type Config struct {
	Sessions model.SessionRepository
	Store    Persister
	Notifier Notifier
}

// Engine drives one conversation turn as a plain pipeline:
// load -> route -> collect -> finalize -> save. No internal parallelism;
// concurrent turns for the same session id are a caller error.
type Engine struct {
	sessions  model.SessionRepository
	finalizer *Finalizer
}

func New(cfg Config) (*Engine, error) {
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session repository is nil")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("persister is nil")
	}
	if cfg.Notifier == nil {
		return nil, fmt.Errorf("notifier is nil")
	}
	return &Engine{
		sessions:  cfg.Sessions,
		finalizer: NewFinalizer(cfg.Store, cfg.Notifier),
	}, nil
}

var _ Runner = (*Engine)(nil)

// Invoke handles one incoming user message and returns the single agent
// reply produced this turn. State is saved even when finalization could not
// run to completion, so the next message retries it.
func (e *Engine) Invoke(ctx context.Context, in model.TurnInput) (string, error) {
	state, err := e.sessions.GetOrCreate(ctx, in.SessionID)
	if err != nil {
		logx.Error().Err(err).Str("session_id", in.SessionID).Msg("failed to load session state")
		return "", err
	}

	state.Append(model.RoleUser, in.Message)
	routeWard(state, in.Message)
	reply := collect(state, in.Message)
	e.finalizer.Finalize(ctx, state)

	if err := e.sessions.Save(ctx, in.SessionID, state); err != nil {
		logx.Error().Err(err).Str("session_id", in.SessionID).Msg("failed to save session state")
		return "", err
	}
	return reply, nil
}
