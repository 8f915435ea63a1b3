package controller

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"ragdesk/internal/session"
)

// Monitor probes /health on a fixed period and owns the service status.
type Monitor struct {
	rt       *runtime
	w        *session.StatusWriter
	seq      sequence
	tick     func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
	onOnline func() tea.Cmd
	logger   zerolog.Logger
}

func newMonitor(rt *runtime, w *session.StatusWriter, onOnline func() tea.Cmd) *Monitor {
	return &Monitor{
		rt:       rt,
		w:        w,
		tick:     tea.Tick,
		onOnline: onOnline,
		logger:   rt.logger.With().Str("component", "monitor").Logger(),
	}
}

func (m *Monitor) Start() tea.Cmd {
	m.logger.Info().
		Str("base_url", m.rt.base).
		Dur("interval", m.rt.cfg.PollInterval).
		Msg("starting health probes")
	return tea.Batch(m.Probe(), m.schedule())
}

func (m *Monitor) schedule() tea.Cmd {
	return m.tick(m.rt.cfg.PollInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Probe issues one health check. Its outcome always arrives as a
// ProbeResultMsg; failures never escape as errors.
func (m *Monitor) Probe() tea.Cmd {
	seq := m.seq.next()
	rt := m.rt
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(rt.ctx, rt.cfg.ProbeTimeout)
		defer cancel()
		return ProbeResultMsg{seq: seq, err: rt.svc.Health(ctx)}
	}
}

func (m *Monitor) handleTick() tea.Cmd {
	return tea.Batch(m.Probe(), m.schedule())
}

// handleResult applies a probe outcome. Entering online from any other
// status seeds history and documents exactly once; staying online does not.
func (m *Monitor) handleResult(msg ProbeResultMsg) tea.Cmd {
	if !m.seq.advance(msg.seq) {
		m.logger.Debug().Uint64("seq", msg.seq).Msg("dropping out-of-order probe")
		return nil
	}
	next := session.StatusOnline
	if msg.err != nil {
		next = session.StatusOffline
	}
	prev := m.w.Set(next)
	if prev == next {
		return nil
	}

	if next == session.StatusOffline {
		m.logger.Warn().Err(msg.err).Stringer("from", prev).Msg("service offline")
		return nil
	}
	m.logger.Info().Stringer("from", prev).Msg("service online")
	return m.onOnline()
}
