package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"ragdesk/internal/session"
)

// UploadExtensions are the document types the service indexes.
var UploadExtensions = []string{".txt", ".md"}

// Documents uploads, lists and activates documents. It owns the listing and
// the upload status line.
type Documents struct {
	rt      *runtime
	w       *session.DocumentWriter
	sync    *Synchronizer
	listing sequence
	logger  zerolog.Logger
}

func newDocuments(rt *runtime, w *session.DocumentWriter, sync *Synchronizer) *Documents {
	return &Documents{
		rt:     rt,
		w:      w,
		sync:   sync,
		logger: rt.logger.With().Str("component", "documents").Logger(),
	}
}

func (d *Documents) RefreshListing() tea.Cmd {
	if !d.rt.store.Online() {
		return nil
	}
	seq := d.listing.next()
	rt := d.rt
	return func() tea.Msg {
		ctx, cancel := rt.requestContext()
		defer cancel()
		docs, err := rt.svc.Documents(ctx)
		return ListingLoadedMsg{seq: seq, docs: docs, err: err}
	}
}

func (d *Documents) handleListing(msg ListingLoadedMsg) tea.Cmd {
	if msg.err != nil {
		d.logger.Warn().Err(msg.err).Msg("document listing failed, keeping previous listing")
		return nil
	}
	if !d.listing.advance(msg.seq) {
		return nil
	}
	docs := make([]session.Document, 0, len(msg.docs))
	for _, doc := range msg.docs {
		docs = append(docs, session.Document{Filename: doc.Filename, Size: doc.Size, Active: doc.Active})
	}
	d.w.ReplaceListing(docs)
	d.logger.Debug().Int("documents", len(docs)).Msg("listing refreshed")
	return nil
}

// Upload sends the file at path. Unsupported extensions are rejected locally
// without a request.
func (d *Documents) Upload(path string) tea.Cmd {
	path = strings.TrimSpace(path)
	if path == "" || !d.rt.store.Online() {
		return nil
	}
	filename := filepath.Base(path)
	if !supportedUpload(filename) {
		d.w.SetUploadStatus(session.Failure(fmt.Sprintf(
			"Only %s files are supported", strings.Join(UploadExtensions, " and "),
		)))
		return nil
	}
	d.w.SetUploading(true)
	d.w.SetUploadStatus(session.Info("Uploading " + filename + "..."))
	d.logger.Info().Str("path", path).Msg("uploading document")

	rt := d.rt
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return UploadDoneMsg{filename: filename, readErr: err}
		}
		defer f.Close()
		ctx, cancel := rt.requestContext()
		defer cancel()
		resp, err := rt.svc.UploadDocument(ctx, filename, f)
		return UploadDoneMsg{filename: filename, resp: resp, err: err}
	}
}

func (d *Documents) handleUpload(msg UploadDoneMsg) tea.Cmd {
	d.w.SetUploading(false)
	if msg.readErr != nil {
		d.w.SetUploadStatus(session.Failure("Could not read " + msg.filename + ": " + rootCause(msg.readErr)))
		d.logger.Warn().Err(msg.readErr).Msg("reading upload failed")
		return nil
	}
	if msg.err != nil {
		d.w.SetUploadStatus(session.Failure(describeAction("Upload", msg.err, d.rt.base)))
		d.logger.Warn().Err(msg.err).Str("filename", msg.filename).Msg("upload failed")
		return nil
	}
	name := msg.resp.Filename
	if strings.TrimSpace(name) == "" {
		name = msg.filename
	}
	d.w.SetUploadStatus(session.Info("Uploaded " + name))
	return d.RefreshListing()
}

// Activate makes filename the service's retrieval source. A document the
// current listing already marks active is never re-activated.
func (d *Documents) Activate(filename string) tea.Cmd {
	if strings.TrimSpace(filename) == "" || !d.rt.store.Online() {
		return nil
	}
	if d.rt.store.IsActive(filename) {
		return nil
	}
	d.w.SetActivating(true)
	d.logger.Info().Str("filename", filename).Msg("activating document")

	rt := d.rt
	return func() tea.Msg {
		ctx, cancel := rt.requestContext()
		defer cancel()
		resp, err := rt.svc.ActivateDocument(ctx, filename)
		return ActivateDoneMsg{filename: filename, resp: resp, err: err}
	}
}

// handleActivate refreshes the listing and, because the service clears its
// memory on activation, the conversation as well.
func (d *Documents) handleActivate(msg ActivateDoneMsg) tea.Cmd {
	d.w.SetActivating(false)
	if msg.err != nil {
		d.w.SetUploadStatus(session.Failure(describeAction("Activation", msg.err, d.rt.base)))
		d.logger.Warn().Err(msg.err).Str("filename", msg.filename).Msg("activation failed")
		return nil
	}
	text := strings.TrimSpace(msg.resp.Message)
	if text == "" {
		text = "Activated " + msg.filename
	}
	d.w.SetUploadStatus(session.Info(text))
	return tea.Batch(d.RefreshListing(), d.sync.Refresh())
}

func supportedUpload(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range UploadExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func rootCause(err error) string {
	cause := errors.Cause(err)
	if pathErr, ok := cause.(*os.PathError); ok {
		return pathErr.Err.Error()
	}
	return cause.Error()
}
