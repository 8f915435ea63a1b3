package controller

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"ragdesk/internal/ragapi"
	"ragdesk/internal/session"
)

const defaultResetMessage = "Conversation memory has been reset"

// Resetter clears the service's conversation memory. Its outcome goes to the
// reset notice, which each reset overwrites.
type Resetter struct {
	rt     *runtime
	w      *session.ResetWriter
	sync   *Synchronizer
	logger zerolog.Logger
}

func newResetter(rt *runtime, w *session.ResetWriter, sync *Synchronizer) *Resetter {
	return &Resetter{
		rt:     rt,
		w:      w,
		sync:   sync,
		logger: rt.logger.With().Str("component", "resetter").Logger(),
	}
}

func (r *Resetter) Reset() tea.Cmd {
	if !r.rt.store.Online() {
		return nil
	}
	r.w.SetResetting(true)
	r.logger.Info().Msg("resetting conversation memory")

	rt := r.rt
	return func() tea.Msg {
		ctx, cancel := rt.requestContext()
		defer cancel()
		resp, err := rt.svc.ResetMemory(ctx)
		return ResetDoneMsg{resp: resp, err: err}
	}
}

func (r *Resetter) handle(msg ResetDoneMsg) tea.Cmd {
	r.w.SetResetting(false)
	if msg.err != nil {
		r.w.SetNotice(session.Failure(Describe(msg.err, r.rt.base)))
		r.logger.Warn().Err(msg.err).Msg("reset failed")
		return nil
	}
	text := strings.TrimSpace(msg.resp.Message)
	if text == "" {
		text = defaultResetMessage
	}
	if strings.EqualFold(msg.resp.Status, ragapi.StatusWarning) {
		r.w.SetNotice(session.Warning(text))
	} else {
		r.w.SetNotice(session.Info(text))
	}
	return r.sync.Refresh()
}
