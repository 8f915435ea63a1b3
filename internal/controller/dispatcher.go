package controller

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"ragdesk/internal/session"
)

// Dispatcher sends questions and owns the pending question, the answer and
// the error message.
//
// Every ask gets a sequence number. Only the result of the latest ask is
// applied, so a slow earlier answer can never overwrite a newer one.
type Dispatcher struct {
	rt     *runtime
	w      *session.QueryWriter
	sync   *Synchronizer
	seq    sequence
	logger zerolog.Logger
}

func newDispatcher(rt *runtime, w *session.QueryWriter, sync *Synchronizer) *Dispatcher {
	return &Dispatcher{
		rt:     rt,
		w:      w,
		sync:   sync,
		logger: rt.logger.With().Str("component", "dispatcher").Logger(),
	}
}

func (d *Dispatcher) SetQuestion(text string) {
	d.w.SetPendingQuestion(text)
}

func (d *Dispatcher) Ask(question string) tea.Cmd {
	if strings.TrimSpace(question) == "" || !d.rt.store.Online() {
		return nil
	}
	seq := d.seq.next()
	d.w.SetAsking(true)
	d.w.SetErrorMessage("")
	d.w.SetAnswer("")
	d.logger.Info().Uint64("seq", seq).Int("chars", len(question)).Msg("asking")

	rt := d.rt
	return func() tea.Msg {
		ctx, cancel := rt.requestContext()
		defer cancel()
		resp, err := rt.svc.Ask(ctx, question)
		return AskDoneMsg{seq: seq, answer: resp.Answer, err: err}
	}
}

func (d *Dispatcher) handle(msg AskDoneMsg) tea.Cmd {
	if !d.seq.isLatest(msg.seq) {
		d.logger.Debug().Uint64("seq", msg.seq).Msg("discarding superseded answer")
		return nil
	}
	d.w.SetAsking(false)
	d.w.SetPendingQuestion("")

	if msg.err != nil {
		d.w.SetAnswer("")
		d.w.SetErrorMessage(Describe(msg.err, d.rt.base))
		d.logger.Warn().Err(msg.err).Uint64("seq", msg.seq).Msg("ask failed")
		return nil
	}
	d.w.SetAnswer(msg.answer)
	return d.sync.Refresh()
}
