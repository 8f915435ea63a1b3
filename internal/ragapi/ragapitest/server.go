// Package ragapitest provides a programmable fake of the answering service.
package ragapitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"ragdesk/internal/ragapi"
)

// Reply is a canned response. A nil Body writes no body at all; a string
// Body is written raw, anything else is JSON encoded.
type Reply struct {
	Status int
	Body   any
}

func OK(body any) Reply { return Reply{Status: http.StatusOK, Body: body} }

func Fail(status int, detail string) Reply {
	return Reply{Status: status, Body: map[string]string{"detail": detail}}
}

type Upload struct {
	Filename string
	Content  string
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	replies   map[string]Reply
	hits      map[string]int
	asked     []string
	uploads   []Upload
	activated []string
	headers   map[string]http.Header
}

// New starts a fake whose endpoints all succeed with empty state.
func New(t testing.TB) *Server {
	s := &Server{
		replies: map[string]Reply{
			ragapi.PathHealth:   OK(map[string]string{"status": "ok", "message": "Server is running"}),
			ragapi.PathAsk:      OK(ragapi.AskResponse{Answer: ""}),
			ragapi.PathHistory:  OK(ragapi.HistoryResponse{}),
			ragapi.PathDocs:     OK([]ragapi.DocumentInfo{}),
			ragapi.PathUpload:   OK(ragapi.UploadResponse{}),
			ragapi.PathActivate: OK(ragapi.StatusResponse{Status: ragapi.StatusSuccess}),
			ragapi.PathReset:    OK(ragapi.StatusResponse{Status: ragapi.StatusSuccess, Message: "Conversation memory has been reset"}),
		},
		hits:    map[string]int{},
		headers: map[string]http.Header{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) BaseURL() *url.URL {
	u, err := url.Parse(s.URL)
	if err != nil {
		panic(err)
	}
	return u
}

// Set replaces the reply for path. Activation replies are keyed by
// ragapi.PathActivate regardless of filename.
func (s *Server) Set(path string, reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[path] = reply
}

func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *Server) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.asked...)
}

func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upload(nil), s.uploads...)
}

func (s *Server) Activated() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.activated...)
}

// LastHeader returns the headers of the most recent request to path.
func (s *Server) LastHeader(path string) http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headers[path].Clone()
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Path
	if strings.HasPrefix(key, ragapi.PathActivate) {
		key = ragapi.PathActivate
	}

	s.mu.Lock()
	s.hits[key]++
	s.headers[key] = r.Header.Clone()
	switch key {
	case ragapi.PathAsk:
		var req ragapi.AskRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.asked = append(s.asked, req.Input)
	case ragapi.PathUpload:
		if file, header, err := r.FormFile("file"); err == nil {
			content, _ := io.ReadAll(file)
			_ = file.Close()
			s.uploads = append(s.uploads, Upload{Filename: header.Filename, Content: string(content)})
		}
	case ragapi.PathActivate:
		name, _ := url.PathUnescape(strings.TrimPrefix(r.URL.EscapedPath(), ragapi.PathActivate))
		s.activated = append(s.activated, name)
	}
	reply, ok := s.replies[key]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	writeReply(w, reply)
}

func writeReply(w http.ResponseWriter, reply Reply) {
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	switch body := reply.Body.(type) {
	case nil:
		w.WriteHeader(status)
	case string:
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
