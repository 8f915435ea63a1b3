package session

// StatusWriter belongs to the connectivity monitor.
type StatusWriter struct{ s *Store }

func (s *Store) ClaimStatus() *StatusWriter {
	s.claim("status")
	return &StatusWriter{s: s}
}

// Set records a probe outcome and returns the previous status. Status never
// goes back to checking once a probe has resolved.
func (w *StatusWriter) Set(next Status) Status {
	prev := w.s.status
	if next == StatusChecking && prev != StatusChecking {
		return prev
	}
	w.s.status = next
	return prev
}

// ConversationWriter belongs to the conversation synchronizer.
type ConversationWriter struct{ s *Store }

func (s *Store) ClaimConversation() *ConversationWriter {
	s.claim("conversation")
	return &ConversationWriter{s: s}
}

// Replace swaps the whole conversation. Nil slices are stored as empty.
func (w *ConversationWriter) Replace(c Conversation) {
	w.s.conversation = c.clone()
}

// DocumentWriter belongs to the document manager.
type DocumentWriter struct{ s *Store }

func (s *Store) ClaimDocuments() *DocumentWriter {
	s.claim("documents")
	return &DocumentWriter{s: s}
}

func (w *DocumentWriter) ReplaceListing(docs []Document) {
	w.s.documents = append([]Document{}, docs...)
}

func (w *DocumentWriter) SetUploadStatus(n Notice) { w.s.uploadStatus = n }
func (w *DocumentWriter) SetUploading(v bool)      { w.s.uploading = v }
func (w *DocumentWriter) SetActivating(v bool)     { w.s.activating = v }

// QueryWriter belongs to the query dispatcher.
type QueryWriter struct{ s *Store }

func (s *Store) ClaimQuery() *QueryWriter {
	s.claim("query")
	return &QueryWriter{s: s}
}

func (w *QueryWriter) SetPendingQuestion(text string) { w.s.pendingQuestion = text }
func (w *QueryWriter) SetAnswer(text string)          { w.s.answer = text }
func (w *QueryWriter) SetErrorMessage(text string)    { w.s.errorMessage = text }
func (w *QueryWriter) SetAsking(v bool)               { w.s.asking = v }

// ResetWriter belongs to the memory reset controller.
type ResetWriter struct{ s *Store }

func (s *Store) ClaimReset() *ResetWriter {
	s.claim("reset")
	return &ResetWriter{s: s}
}

func (w *ResetWriter) SetNotice(n Notice)   { w.s.resetNotice = n }
func (w *ResetWriter) SetResetting(v bool) { w.s.resetting = v }
