// Package session holds the state shared by the controller components and
// read by the terminal shell.
//
// Every field has exactly one writer. Writers are claimed once from the
// Store; everyone else only reads. The Store is not safe for concurrent use:
// it is owned by the program's event loop.
package session

import "fmt"

type Store struct {
	status Status

	conversation Conversation

	documents    []Document
	uploadStatus Notice
	uploading    bool
	activating   bool

	pendingQuestion string
	answer          string
	errorMessage    string
	asking          bool

	resetNotice Notice
	resetting   bool

	claimed map[string]bool
}

func NewStore() *Store {
	return &Store{
		status:       StatusChecking,
		conversation: Conversation{}.clone(),
		documents:    []Document{},
		claimed:      map[string]bool{},
	}
}

func (s *Store) claim(owner string) {
	if s.claimed[owner] {
		panic(fmt.Sprintf("session: %s writer claimed twice", owner))
	}
	s.claimed[owner] = true
}

func (s *Store) Status() Status { return s.status }

func (s *Store) Online() bool { return s.status == StatusOnline }

func (s *Store) Conversation() Conversation { return s.conversation.clone() }

func (s *Store) Documents() []Document { return append([]Document{}, s.documents...) }

// ActiveDocument is the first document the service marked active.
func (s *Store) ActiveDocument() (Document, bool) {
	for _, doc := range s.documents {
		if doc.Active {
			return doc, true
		}
	}
	return Document{}, false
}

func (s *Store) IsActive(filename string) bool {
	for _, doc := range s.documents {
		if doc.Filename == filename {
			return doc.Active
		}
	}
	return false
}

func (s *Store) UploadStatus() Notice    { return s.uploadStatus }
func (s *Store) Uploading() bool         { return s.uploading }
func (s *Store) Activating() bool        { return s.activating }
func (s *Store) PendingQuestion() string { return s.pendingQuestion }
func (s *Store) Answer() string          { return s.answer }
func (s *Store) ErrorMessage() string    { return s.errorMessage }
func (s *Store) Asking() bool            { return s.asking }
func (s *Store) ResetNotice() Notice     { return s.resetNotice }
func (s *Store) Resetting() bool         { return s.resetting }

// Snapshot is a detached copy of the whole store.
type Snapshot struct {
	Status          Status
	Conversation    Conversation
	Documents       []Document
	UploadStatus    Notice
	Uploading       bool
	Activating      bool
	PendingQuestion string
	Answer          string
	ErrorMessage    string
	Asking          bool
	ResetNotice     Notice
	Resetting       bool
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Status:          s.status,
		Conversation:    s.Conversation(),
		Documents:       s.Documents(),
		UploadStatus:    s.uploadStatus,
		Uploading:       s.uploading,
		Activating:      s.activating,
		PendingQuestion: s.pendingQuestion,
		Answer:          s.answer,
		ErrorMessage:    s.errorMessage,
		Asking:          s.asking,
		ResetNotice:     s.resetNotice,
		Resetting:       s.resetting,
	}
}
