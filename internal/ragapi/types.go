package ragapi

type AskRequest struct {
	Input string `json:"input"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HistoryResponse mirrors GET /history. Every field is optional on the wire.
type HistoryResponse struct {
	History          []HistoryMessage `json:"history"`
	Summary          string           `json:"summary"`
	MemoryAttributes []string         `json:"memory_attributes"`
	ChainAttributes  []string         `json:"chain_attributes"`
}

type DocumentInfo struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Active   bool   `json:"active"`
}

type UploadResponse struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Active   bool   `json:"active"`
}

// StatusResponse is returned by the activate and reset endpoints.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const (
	StatusSuccess = "success"
	StatusWarning = "warning"
)

type errorBody struct {
	Detail any `json:"detail"`
}
