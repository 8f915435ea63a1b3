package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragdesk/internal/controller"
	"ragdesk/internal/ragapi"
	"ragdesk/internal/ragapi/ragapitest"
	"ragdesk/internal/session"
)

type shell struct {
	t     *testing.T
	srv   *ragapitest.Server
	m     model
	quit  bool
	ticks int
}

func immediateTick(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg { return fn(time.Now()) }
}

// newShell builds the model against a fake service. setup runs before the
// first probe so the initial listing and history can be programmed.
func newShell(t *testing.T, setup func(*ragapitest.Server)) *shell {
	t.Helper()
	srv := ragapitest.New(t)
	if setup != nil {
		setup(srv)
	}
	cfg := controller.Config{PollInterval: time.Hour, ProbeTimeout: 2 * time.Second, RequestTimeout: 5 * time.Second}
	ctrl := controller.New(ragapi.New(srv.BaseURL()), session.NewStore(), cfg, zerolog.Nop(), controller.WithTicker(immediateTick))
	t.Cleanup(ctrl.Close)

	s := &shell{t: t, srv: srv, m: newModel(ctrl)}
	s.run(ctrl.Init())
	s.send(tea.WindowSizeMsg{Width: 140, Height: 40})
	return s
}

func (s *shell) send(msg tea.Msg) {
	s.t.Helper()
	next, cmd := s.m.Update(msg)
	s.m = next.(model)
	s.run(cmd)
}

// run executes cmd and its follow-ups synchronously. Probe ticks are counted,
// not fed back, so the schedule never loops.
func (s *shell) run(cmd tea.Cmd) {
	s.t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			s.run(c)
		}
	case controller.TickMsg:
		s.ticks++
	case tea.QuitMsg:
		s.quit = true
	default:
		s.send(msg)
	}
}

func (s *shell) key(k tea.KeyType) {
	s.t.Helper()
	s.send(tea.KeyMsg{Type: k})
}

// submit types line into the input and presses Enter.
func (s *shell) submit(line string) {
	s.t.Helper()
	s.m.input.SetValue(line)
	s.m.ctrl.SetQuestion(line)
	s.key(tea.KeyEnter)
}

func TestShellStartsOnlineAndListsDocuments(t *testing.T) {
	s := newShell(t, func(srv *ragapitest.Server) {
		srv.Set(ragapi.PathDocs, ragapitest.OK([]ragapi.DocumentInfo{
			{Filename: "handbook.md", Size: 2048, Active: true},
			{Filename: "notes.txt", Size: 512},
		}))
	})

	assert.Equal(t, session.StatusOnline, s.m.store.Status())
	assert.Equal(t, 1, s.ticks)
	view := s.m.View()
	assert.Contains(t, view, "online")
	assert.Contains(t, view, "active: handbook.md")
	assert.NotContains(t, view, "Backend server is offline")

	s.key(tea.KeyTab)
	assert.Equal(t, tabDocuments, s.m.activeTab)
	view = s.m.View()
	assert.Contains(t, view, "handbook.md")
	assert.Contains(t, view, "2.0 KB")
	assert.Contains(t, view, "0.5 KB")
}

func TestShellAskShowsAnswerAndClearsInput(t *testing.T) {
	s := newShell(t, nil)
	s.srv.Set(ragapi.PathAsk, ragapitest.OK(ragapi.AskResponse{Answer: "The warranty lasts two years."}))
	s.srv.Set(ragapi.PathHistory, ragapitest.OK(ragapi.HistoryResponse{
		History: []ragapi.HistoryMessage{
			{Role: "human", Content: "How long is the warranty?"},
			{Role: "assistant", Content: "The warranty lasts two years."},
		},
	}))

	s.submit("How long is the warranty?")

	assert.Equal(t, []string{"How long is the warranty?"}, s.srv.Asked())
	assert.Equal(t, "The warranty lasts two years.", s.m.store.Answer())
	assert.Empty(t, s.m.input.Value())
	assert.False(t, s.m.store.Asking())
	assert.Contains(t, s.m.View(), "The warranty lasts two years.")

	s.submit("/history")
	assert.Equal(t, tabMemory, s.m.activeTab)
	assert.Contains(t, s.m.View(), "How long is the warranty?")
}

func TestShellAskFailureShowsError(t *testing.T) {
	s := newShell(t, nil)
	s.srv.Set(ragapi.PathAsk, ragapitest.Reply{Status: http.StatusServiceUnavailable})

	s.submit("anything?")

	assert.Empty(t, s.m.store.Answer())
	assert.Equal(t, controller.MsgOverloaded, s.m.store.ErrorMessage())
	assert.Contains(t, s.m.View(), "temporarily unavailable")
}

func TestShellOfflineDisablesActions(t *testing.T) {
	s := newShell(t, func(srv *ragapitest.Server) {
		srv.Set(ragapi.PathHealth, ragapitest.Reply{Status: http.StatusInternalServerError})
	})

	require.Equal(t, session.StatusOffline, s.m.store.Status())
	assert.Contains(t, s.m.View(), "Backend server is offline. Please start the server at "+s.srv.BaseURL().String())

	s.submit("is anyone there?")
	assert.Zero(t, s.srv.Hits(ragapi.PathAsk))
	assert.Contains(t, s.m.statusLine, "ask disabled")

	s.key(tea.KeyCtrlR)
	assert.Zero(t, s.srv.Hits(ragapi.PathReset))
	assert.Zero(t, s.srv.Hits(ragapi.PathHistory))
}

func TestShellUploadThenActivate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.md")
	require.NoError(t, os.WriteFile(path, []byte("# Guide\n"), 0o600))

	s := newShell(t, nil)
	s.srv.Set(ragapi.PathUpload, ragapitest.OK(ragapi.UploadResponse{Filename: "guide.md", Size: 8}))
	s.srv.Set(ragapi.PathDocs, ragapitest.OK([]ragapi.DocumentInfo{{Filename: "guide.md", Size: 8}}))

	s.submit("/upload " + path)
	require.Len(t, s.srv.Uploads(), 1)
	assert.Equal(t, "# Guide\n", s.srv.Uploads()[0].Content)
	assert.Equal(t, "Uploaded guide.md", s.m.store.UploadStatus().Text)
	assert.Equal(t, "Uploaded guide.md", s.m.statusLine)
	assert.Empty(t, s.m.input.Value())

	s.submit("/docs")
	require.Equal(t, tabDocuments, s.m.activeTab)
	s.srv.Set(ragapi.PathActivate, ragapitest.OK(ragapi.StatusResponse{Status: "success", Message: "Document guide.md activated"}))
	s.srv.Set(ragapi.PathDocs, ragapitest.OK([]ragapi.DocumentInfo{{Filename: "guide.md", Size: 8, Active: true}}))
	s.key(tea.KeyEnter)

	assert.Equal(t, []string{"guide.md"}, s.srv.Activated())
	assert.True(t, s.m.store.IsActive("guide.md"))
	assert.Contains(t, s.m.View(), "Document guide.md activated")

	// already active: no second request
	s.key(tea.KeyEnter)
	assert.Len(t, s.srv.Activated(), 1)
	assert.Contains(t, s.m.statusLine, "already active")
}

func TestShellStatusLineSurvivesSteadyProbes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.txt")
	require.NoError(t, os.WriteFile(path, []byte("q&a"), 0o600))
	s := newShell(t, nil)

	s.submit("/upload " + path)
	require.Equal(t, "Uploaded faq.txt", s.m.statusLine)

	s.run(s.m.ctrl.Probe())
	assert.Equal(t, "Uploaded faq.txt", s.m.statusLine)

	s.srv.Set(ragapi.PathHealth, ragapitest.Reply{Status: http.StatusInternalServerError})
	s.run(s.m.ctrl.Probe())
	assert.Equal(t, "service offline", s.m.statusLine)
}

func TestShellSpinnerAnimatesWhileAsking(t *testing.T) {
	s := newShell(t, nil)
	// the ask command is left unrun so the answer stays pending
	require.NotNil(t, s.m.ask("still there?"))
	require.True(t, s.m.store.Asking())

	before := s.m.answer.View()
	next, _ := s.m.Update(spinner.TickMsg{ID: s.m.spinner.ID(), Time: time.Now()})
	s.m = next.(model)

	assert.NotEqual(t, before, s.m.answer.View())
	assert.Contains(t, s.m.answer.View(), "waiting for the answer")
}

func TestShellRejectsUnsupportedUpload(t *testing.T) {
	s := newShell(t, nil)
	s.submit("/upload /tmp/report.pdf")

	assert.Empty(t, s.srv.Uploads())
	assert.Equal(t, session.NoticeError, s.m.store.UploadStatus().Kind)
	assert.Equal(t, "Only .txt and .md files are supported", s.m.statusLine)
}

func TestShellResetShortcut(t *testing.T) {
	s := newShell(t, nil)
	s.srv.Set(ragapi.PathReset, ragapitest.OK(ragapi.StatusResponse{Status: "warning", Message: "No memory found to reset"}))
	historyBefore := s.srv.Hits(ragapi.PathHistory)

	s.key(tea.KeyCtrlR)

	assert.Equal(t, 1, s.srv.Hits(ragapi.PathReset))
	assert.Equal(t, session.Warning("No memory found to reset"), s.m.store.ResetNotice())
	assert.Equal(t, "No memory found to reset", s.m.statusLine)
	assert.Equal(t, historyBefore+1, s.srv.Hits(ragapi.PathHistory))
}

func TestShellTabsAndCommands(t *testing.T) {
	s := newShell(t, nil)

	s.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, tabHelp, s.m.activeTab)
	assert.Contains(t, s.m.View(), "/upload <path>")

	s.key(tea.KeyEsc)
	assert.Equal(t, tabChat, s.m.activeTab)

	s.submit("/frobnicate")
	assert.Contains(t, s.m.statusLine, "unknown command /frobnicate")

	s.submit("/activate")
	assert.Equal(t, "usage: /activate <filename>", s.m.statusLine)
}

func TestShellQuitClosesController(t *testing.T) {
	s := newShell(t, nil)
	s.key(tea.KeyCtrlC)

	assert.True(t, s.quit)
	assert.True(t, s.m.ctrl.Closed())
	assert.Nil(t, s.m.ctrl.Probe())
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	if got != "one two\nthree\nfour" {
		t.Fatalf("unexpected wrap: %q", got)
	}
	if wrapText("keep", 0) != "keep" {
		t.Fatalf("expected zero width to return input")
	}
}

func TestTruncateAndPad(t *testing.T) {
	if got := truncate("handbook-final.md", 10); got != "handboo..." {
		t.Fatalf("unexpected truncate: %q", got)
	}
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("unexpected pad: %q", got)
	}
	if got := compactSingleLine("a\n  b\tc", 20); got != "a b c" {
		t.Fatalf("unexpected compact: %q", got)
	}
	if !strings.HasSuffix(truncate(strings.Repeat("é", 12), 6), "...") {
		t.Fatalf("expected rune-aware truncate")
	}
}
