package session

import "fmt"

type Status int

const (
	StatusChecking Status = iota
	StatusOnline
	StatusOffline
)

func (s Status) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusOnline:
		return "online"
	case StatusOffline:
		return "offline"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

const (
	RoleHuman     = "human"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

// Conversation is the service's authoritative memory view. It is replaced as
// a whole on every synchronization.
type Conversation struct {
	History          []Message
	Summary          string
	MemoryAttributes []string
	ChainAttributes  []string
}

func (c Conversation) clone() Conversation {
	return Conversation{
		History:          append([]Message{}, c.History...),
		Summary:          c.Summary,
		MemoryAttributes: append([]string{}, c.MemoryAttributes...),
		ChainAttributes:  append([]string{}, c.ChainAttributes...),
	}
}

func (c Conversation) Empty() bool {
	return len(c.History) == 0 && c.Summary == ""
}

type Document struct {
	Filename string
	Size     int64
	Active   bool
}

// FormatKB renders a byte count in kilobytes with one decimal.
func FormatKB(size int64) string {
	return fmt.Sprintf("%.1f KB", float64(size)/1024)
}

type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeInfo
	NoticeWarning
	NoticeError
)

// Notice is a transient, human-readable outcome of the latest action on a
// channel. Each action overwrites it.
type Notice struct {
	Kind NoticeKind
	Text string
}

func (n Notice) Empty() bool { return n.Kind == NoticeNone && n.Text == "" }

func Info(text string) Notice    { return Notice{Kind: NoticeInfo, Text: text} }
func Warning(text string) Notice { return Notice{Kind: NoticeWarning, Text: text} }
func Failure(text string) Notice { return Notice{Kind: NoticeError, Text: text} }
