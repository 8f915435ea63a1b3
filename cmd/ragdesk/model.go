package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ragdesk/internal/controller"
	"ragdesk/internal/session"
)

type tabID int

const (
	tabChat tabID = iota
	tabDocuments
	tabMemory
	tabHelp
)

var tabOrder = []struct {
	id    tabID
	label string
}{
	{tabChat, "Chat"},
	{tabDocuments, "Documents"},
	{tabMemory, "Memory"},
	{tabHelp, "Help"},
}

type model struct {
	ctrl  *controller.Controller
	store *session.Store

	activeTab  tabID
	docIndex   int
	statusLine string

	width  int
	height int

	input   textinput.Model
	answer  viewport.Model
	memory  viewport.Model
	spinner spinner.Model

	theme uiTheme
}

func newModel(ctrl *controller.Controller) model {
	input := textinput.New()
	input.Prompt = "❯ "
	input.CharLimit = 4000
	input.Placeholder = "Ask something... (slash commands: /upload /activate /reset /help)"
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#05ffa1"))

	answer := viewport.New(0, 0)
	answer.MouseWheelEnabled = true
	answer.MouseWheelDelta = 4
	memory := viewport.New(0, 0)
	memory.MouseWheelEnabled = true
	memory.MouseWheelDelta = 4

	return model{
		ctrl:       ctrl,
		store:      ctrl.Store(),
		activeTab:  tabChat,
		statusLine: "starting...",
		input:      input,
		answer:     answer,
		memory:     memory,
		spinner:    sp,
		theme:      newTheme(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textinput.Blink,
		m.ctrl.Init(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	prevStatus := m.store.Status()
	if cmd := m.ctrl.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case controller.ProbeResultMsg:
		// keep action outcomes visible while the status holds
		if status := m.store.Status(); status != prevStatus {
			m.statusLine = "service " + status.String()
		}
	case controller.AskDoneMsg:
		m.input.SetValue(m.store.PendingQuestion())
		m.renderPanes()
	case controller.HistoryLoadedMsg:
		m.renderPanes()
	case controller.ResetDoneMsg:
		m.statusLine = nullCoalesce(m.store.ResetNotice().Text, "memory reset")
		m.renderPanes()
	case controller.UploadDoneMsg, controller.ActivateDoneMsg:
		m.statusLine = nullCoalesce(m.store.UploadStatus().Text, m.statusLine)
		m.docIndex = clampInt(m.docIndex, 0, maxInt(0, len(m.store.Documents())-1))
	case controller.ListingLoadedMsg:
		m.docIndex = clampInt(m.docIndex, 0, maxInt(0, len(m.store.Documents())-1))
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.renderPanes()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.store.Asking() {
			m.answer.SetContent(m.renderAnswer())
		}
	case tea.MouseMsg:
		var cmd tea.Cmd
		switch m.activeTab {
		case tabChat:
			m.answer, cmd = m.answer.Update(msg)
		case tabMemory:
			m.memory, cmd = m.memory.Update(msg)
		}
		cmds = append(cmds, cmd)
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	default:
		// cursor blink and other component messages
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		m.ctrl.Close()
		return tea.Quit
	case "tab":
		m.switchTab(1)
		return nil
	case "shift+tab":
		m.switchTab(-1)
		return nil
	case "ctrl+r":
		return m.resetMemory()
	case "esc":
		if m.activeTab != tabChat {
			m.switchTab(int(tabChat) - int(m.activeTab))
		}
		return nil
	}

	switch m.activeTab {
	case tabChat:
		return m.handleChatKey(msg)
	case tabDocuments:
		return m.handleDocumentsKey(msg)
	case tabMemory:
		var cmd tea.Cmd
		m.memory, cmd = m.memory.Update(msg)
		return cmd
	}
	return nil
}

func (m *model) switchTab(delta int) {
	n := len(tabOrder)
	m.activeTab = tabID(((int(m.activeTab)+delta)%n + n) % n)
	if m.activeTab == tabChat {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	m.renderPanes()
}

func (m *model) handleChatKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		raw := m.input.Value()
		if strings.HasPrefix(strings.TrimSpace(raw), "/") {
			m.input.SetValue("")
			m.ctrl.SetQuestion("")
			return m.handleSlash(strings.TrimSpace(raw))
		}
		return m.ask(raw)
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.answer, cmd = m.answer.Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetQuestion(m.input.Value())
	return cmd
}

// ask is disabled while an answer is loading or the service is not online.
func (m *model) ask(question string) tea.Cmd {
	if m.store.Asking() {
		return nil
	}
	if !m.store.Online() {
		m.statusLine = "service is " + m.store.Status().String() + "; ask disabled"
		return nil
	}
	m.ctrl.SetQuestion(question)
	cmd := m.ctrl.Ask(question)
	if cmd != nil {
		m.statusLine = "thinking..."
		m.renderPanes()
	}
	return cmd
}

func (m *model) handleDocumentsKey(msg tea.KeyMsg) tea.Cmd {
	docs := m.store.Documents()
	switch msg.String() {
	case "up", "k":
		m.docIndex = clampInt(m.docIndex-1, 0, maxInt(0, len(docs)-1))
	case "down", "j":
		m.docIndex = clampInt(m.docIndex+1, 0, maxInt(0, len(docs)-1))
	case "enter":
		if len(docs) == 0 {
			return nil
		}
		return m.activate(docs[clampInt(m.docIndex, 0, len(docs)-1)].Filename)
	case "r":
		return m.ctrl.RefreshListing()
	case "u":
		m.switchTab(int(tabChat) - int(m.activeTab))
		m.input.SetValue("/upload ")
		m.input.CursorEnd()
	}
	return nil
}

func (m *model) activate(filename string) tea.Cmd {
	if m.store.IsActive(filename) {
		m.statusLine = filename + " is already active"
		return nil
	}
	if m.store.Activating() {
		return nil
	}
	if !m.store.Online() {
		m.statusLine = "service is " + m.store.Status().String() + "; activation disabled"
		return nil
	}
	m.statusLine = "activating " + filename + "..."
	return m.ctrl.Activate(filename)
}

func (m *model) resetMemory() tea.Cmd {
	if m.store.Resetting() {
		return nil
	}
	if !m.store.Online() {
		m.statusLine = "service is " + m.store.Status().String() + "; reset disabled"
		return nil
	}
	m.statusLine = "resetting memory..."
	return m.ctrl.ResetMemory()
}

func (m *model) handleSlash(raw string) tea.Cmd {
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		return nil
	}
	command := strings.ToLower(parts[0])
	arg := strings.TrimSpace(strings.TrimPrefix(raw, parts[0]))

	switch command {
	case "/upload":
		if arg == "" {
			m.statusLine = "usage: /upload <path>"
			return nil
		}
		if m.store.Uploading() {
			return nil
		}
		if !m.store.Online() {
			m.statusLine = "service is " + m.store.Status().String() + "; upload disabled"
			return nil
		}
		cmd := m.ctrl.Upload(arg)
		if cmd == nil {
			m.statusLine = nullCoalesce(m.store.UploadStatus().Text, "upload skipped")
			return nil
		}
		m.statusLine = "uploading " + arg + "..."
		return cmd
	case "/activate":
		if arg == "" {
			m.statusLine = "usage: /activate <filename>"
			return nil
		}
		return m.activate(arg)
	case "/reset":
		return m.resetMemory()
	case "/docs":
		m.switchTab(int(tabDocuments) - int(m.activeTab))
		return m.ctrl.RefreshListing()
	case "/history":
		m.switchTab(int(tabMemory) - int(m.activeTab))
		return m.ctrl.RefreshHistory()
	case "/help":
		m.switchTab(int(tabHelp) - int(m.activeTab))
		return nil
	case "/quit", "/exit":
		m.ctrl.Close()
		return tea.Quit
	default:
		m.statusLine = fmt.Sprintf("unknown command %s (try /help)", command)
		return nil
	}
}
