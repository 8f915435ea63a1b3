package controller

import (
	"time"

	"ragdesk/internal/ragapi"
)

// TickMsg fires once per poll interval.
type TickMsg time.Time

type ProbeResultMsg struct {
	seq uint64
	err error
}

type HistoryLoadedMsg struct {
	seq  uint64
	resp ragapi.HistoryResponse
	err  error
}

type ListingLoadedMsg struct {
	seq  uint64
	docs []ragapi.DocumentInfo
	err  error
}

type AskDoneMsg struct {
	seq    uint64
	answer string
	err    error
}

type UploadDoneMsg struct {
	filename string
	resp     ragapi.UploadResponse
	readErr  error
	err      error
}

type ActivateDoneMsg struct {
	filename string
	resp     ragapi.StatusResponse
	err      error
}

type ResetDoneMsg struct {
	resp ragapi.StatusResponse
	err  error
}
