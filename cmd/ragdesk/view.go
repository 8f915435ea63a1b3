package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ragdesk/internal/session"
)

func (m model) View() string {
	header := m.renderHeader()
	content := m.renderContent()
	input := m.renderInput()
	footer := m.renderFooter()
	out := lipgloss.JoinVertical(lipgloss.Left, header, content, input, footer)
	return m.theme.root.Render(out)
}

func (m *model) resize() {
	contentWidth := maxInt(40, m.width-4)
	contentHeight := maxInt(8, m.height-12)
	m.input.Width = maxInt(20, contentWidth-6)
	m.answer.Width = maxInt(20, contentWidth-4)
	m.answer.Height = maxInt(3, contentHeight-4)
	m.memory.Width = maxInt(20, contentWidth-4)
	m.memory.Height = maxInt(3, contentHeight-2)
}

// renderPanes refreshes the viewport contents from the store.
func (m *model) renderPanes() {
	m.answer.SetContent(m.renderAnswer())
	m.memory.SetContent(m.renderMemory())
}

func (m *model) renderHeader() string {
	segments := make([]string, 0, len(tabOrder)+2)
	for _, tab := range tabOrder {
		style := m.theme.tabInactive
		if tab.id == m.activeTab {
			style = m.theme.tabActive
		}
		segments = append(segments, style.Render(tab.label))
	}
	segments = append(segments, " "+m.statusPill())
	segments = append(segments, m.theme.helpText.Render(" "+m.ctrl.BaseURL()))
	joined := lipgloss.JoinHorizontal(lipgloss.Left, segments...)
	return m.theme.header.Width(maxInt(20, m.width-4)).Render(joined)
}

func (m *model) statusPill() string {
	switch m.store.Status() {
	case session.StatusOnline:
		return m.theme.online.Render("● online")
	case session.StatusOffline:
		return m.theme.offline.Render("● offline")
	default:
		return m.theme.checking.Render(m.spinner.View() + " checking")
	}
}

// banner explains why actions are disabled while the service is not online.
func (m *model) banner() string {
	base := m.ctrl.BaseURL()
	switch m.store.Status() {
	case session.StatusChecking:
		return m.theme.bannerWarn.Render("Checking server status at " + base + "...")
	case session.StatusOffline:
		return m.theme.bannerError.Render("Backend server is offline. Please start the server at " + base)
	}
	return ""
}

func (m *model) renderContent() string {
	contentHeight := maxInt(8, m.height-12)
	contentWidth := maxInt(40, m.width-4)

	var body string
	switch m.activeTab {
	case tabChat:
		title := "Answer"
		if active, ok := m.store.ActiveDocument(); ok {
			title += m.theme.helpText.Render("  ·  active: " + active.Filename)
		}
		body = m.theme.panelTitle.Render(title) + "\n" + m.answer.View()
	case tabDocuments:
		body = m.renderDocuments(contentWidth - 4)
	case tabMemory:
		body = m.theme.panelTitle.Render("Conversation memory") + "\n" + m.memory.View()
	case tabHelp:
		body = m.renderHelp(contentWidth - 4)
	}
	if b := m.banner(); b != "" {
		body = b + "\n" + body
	}
	return m.theme.panel.Width(contentWidth).Height(contentHeight).Render(body)
}

func (m *model) renderAnswer() string {
	width := maxInt(24, m.answer.Width-2)
	snap := m.store.Snapshot()
	if snap.Asking {
		return m.spinner.View() + " waiting for the answer..."
	}
	var b strings.Builder
	if snap.ErrorMessage != "" {
		b.WriteString(m.theme.errorStatus.Render(wrapText(snap.ErrorMessage, width)))
		b.WriteString("\n\n")
	}
	if !snap.ResetNotice.Empty() {
		b.WriteString(m.renderNotice(snap.ResetNotice, width))
		b.WriteString("\n\n")
	}
	if snap.Answer != "" {
		b.WriteString(wrapText(snap.Answer, width))
	} else if b.Len() == 0 {
		b.WriteString(m.theme.helpText.Render("No answer yet. Type a question below and press Enter."))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *model) renderNotice(n session.Notice, width int) string {
	text := wrapText(n.Text, width)
	switch n.Kind {
	case session.NoticeError:
		return m.theme.errorStatus.Render(text)
	case session.NoticeWarning:
		return m.theme.warnStatus.Render(text)
	default:
		return m.theme.status.Render(text)
	}
}

func (m *model) renderDocuments(width int) string {
	var b strings.Builder
	b.WriteString(m.theme.panelTitle.Render("Documents"))
	b.WriteString("\n")
	docs := m.store.Documents()
	if len(docs) == 0 {
		b.WriteString(m.theme.helpText.Render("No documents uploaded yet. Use /upload <path> from the Chat tab."))
	}
	nameWidth := clampInt(width-20, 12, 60)
	for idx, doc := range docs {
		marker := "  "
		if doc.Active {
			marker = "★ "
		}
		line := marker + padRight(truncate(doc.Filename, nameWidth), nameWidth) + "  " + session.FormatKB(doc.Size)
		switch {
		case idx == m.docIndex:
			b.WriteString(m.theme.docSelect.Render(line))
		case doc.Active:
			b.WriteString(m.theme.docActive.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	if n := m.store.UploadStatus(); !n.Empty() {
		b.WriteString("\n")
		b.WriteString(m.renderNotice(n, width))
	}
	if m.store.Activating() {
		b.WriteString("\n" + m.spinner.View() + " activating...")
	}
	b.WriteString("\n\n")
	b.WriteString(m.theme.helpText.Render("Up/Down select · Enter activate · r refresh · u upload"))
	return b.String()
}

func (m *model) renderMemory() string {
	width := maxInt(24, m.memory.Width-2)
	conv := m.store.Conversation()
	var b strings.Builder
	if conv.Summary != "" {
		b.WriteString(m.theme.panelTitle.Render("Summary"))
		b.WriteString("\n")
		b.WriteString(wrapText(conv.Summary, width))
		b.WriteString("\n\n")
	}
	if len(conv.History) == 0 {
		b.WriteString(m.theme.helpText.Render("No conversation history yet."))
		b.WriteString("\n")
	}
	for _, msg := range conv.History {
		style, ok := m.theme.roles[msg.Role]
		if !ok {
			style = m.theme.roles["system"]
		}
		label := "You"
		if msg.Role != session.RoleHuman {
			label = "Assistant"
		}
		b.WriteString(style.Render(label))
		b.WriteString("\n")
		b.WriteString(wrapText(msg.Content, width))
		b.WriteString("\n\n")
	}
	if len(conv.MemoryAttributes) > 0 || len(conv.ChainAttributes) > 0 {
		b.WriteString(m.theme.attributeKey.Render("memory: "))
		b.WriteString(compactSingleLine(strings.Join(conv.MemoryAttributes, ", "), width))
		b.WriteString("\n")
		b.WriteString(m.theme.attributeKey.Render("chain: "))
		b.WriteString(compactSingleLine(strings.Join(conv.ChainAttributes, ", "), width))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *model) renderHelp(width int) string {
	lines := []string{
		m.theme.panelTitle.Render("ragdesk"),
		"Ask questions about the active document. The service keeps conversation memory between questions.",
		"",
		m.theme.panelTitle.Render("Commands"),
		"/upload <path>      upload a .txt or .md file",
		"/activate <name>    make an uploaded document the active one (resets memory)",
		"/docs               show the document list",
		"/history            show conversation memory",
		"/reset              clear conversation memory (also Ctrl+R)",
		"/quit               exit",
		"",
		m.theme.panelTitle.Render("Keys"),
		"Tab / Shift+Tab switch view · Enter send · PgUp/PgDn scroll · Esc back to Chat · Ctrl+C quit",
		"",
		fmt.Sprintf("Service: %s", m.ctrl.BaseURL()),
	}
	for i, line := range lines {
		lines[i] = wrapText(line, width)
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderInput() string {
	contentWidth := maxInt(40, m.width-4)
	if m.activeTab != tabChat {
		return m.theme.inputPanel.Width(contentWidth).Render(m.theme.helpText.Render("Input disabled outside Chat tab. Press Tab to return."))
	}
	inputView := m.input.View()
	if m.store.Asking() {
		inputView = m.spinner.View() + " thinking... " + inputView
	}
	return m.theme.inputPanel.Width(contentWidth).Render(inputView)
}

func (m *model) renderFooter() string {
	contentWidth := maxInt(40, m.width-4)
	statusStyle := m.theme.status
	lower := strings.ToLower(m.statusLine)
	switch {
	case strings.Contains(lower, "failed") || strings.Contains(lower, "error") || strings.Contains(lower, "offline"):
		statusStyle = m.theme.errorStatus
	case strings.Contains(lower, "disabled") || strings.Contains(lower, "checking"):
		statusStyle = m.theme.warnStatus
	}
	line := statusStyle.Render(compactSingleLine(m.statusLine, 180))
	hints := m.theme.helpText.Render("Keys: Tab switch view · Enter send · Ctrl+R reset memory · /help commands · Ctrl+C quit")
	return m.theme.footer.Width(contentWidth).Render(line + "\n" + hints)
}
