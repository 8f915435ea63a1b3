package controller

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"ragdesk/internal/ragapi"
	"ragdesk/internal/session"
)

// Synchronizer mirrors the service's conversation memory. Its failures are
// logged and never shown: a stale view beats nagging on a passive refresh.
type Synchronizer struct {
	rt     *runtime
	w      *session.ConversationWriter
	seq    sequence
	logger zerolog.Logger
}

func newSynchronizer(rt *runtime, w *session.ConversationWriter) *Synchronizer {
	return &Synchronizer{
		rt:     rt,
		w:      w,
		logger: rt.logger.With().Str("component", "synchronizer").Logger(),
	}
}

func (s *Synchronizer) Refresh() tea.Cmd {
	if !s.rt.store.Online() || s.rt.base == "" {
		return nil
	}
	seq := s.seq.next()
	rt := s.rt
	return func() tea.Msg {
		ctx, cancel := rt.requestContext()
		defer cancel()
		resp, err := rt.svc.History(ctx)
		return HistoryLoadedMsg{seq: seq, resp: resp, err: err}
	}
}

func (s *Synchronizer) handle(msg HistoryLoadedMsg) tea.Cmd {
	if msg.err != nil {
		s.logger.Warn().Err(msg.err).Msg("history refresh failed, keeping previous state")
		return nil
	}
	if !s.seq.advance(msg.seq) {
		return nil
	}
	conv := conversationFrom(msg.resp)
	s.w.Replace(conv)
	s.logger.Debug().
		Int("messages", len(conv.History)).
		Int("summary_chars", len(conv.Summary)).
		Msg("history refreshed")
	return nil
}

func conversationFrom(resp ragapi.HistoryResponse) session.Conversation {
	history := make([]session.Message, 0, len(resp.History))
	for _, msg := range resp.History {
		history = append(history, session.Message{Role: msg.Role, Content: msg.Content})
	}
	return session.Conversation{
		History:          history,
		Summary:          resp.Summary,
		MemoryAttributes: resp.MemoryAttributes,
		ChainAttributes:  resp.ChainAttributes,
	}
}
