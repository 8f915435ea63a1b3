// Package controller keeps the session store in step with the answering
// service.
//
// The controller is driven by a Bubble Tea program: operations return a
// tea.Cmd that performs the network call off the event loop, and the
// resulting message must be passed back through Update, which is the only
// place session state is written. Operations whose guard fails return nil
// and leave state untouched.
package controller

import (
	"context"
	"io"
	"net/url"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"ragdesk/internal/ragapi"
	"ragdesk/internal/session"
)

// Service is the subset of the answering service the controller consumes.
// *ragapi.Client implements it.
type Service interface {
	BaseURL() *url.URL
	Health(ctx context.Context) error
	Ask(ctx context.Context, input string) (ragapi.AskResponse, error)
	History(ctx context.Context) (ragapi.HistoryResponse, error)
	Documents(ctx context.Context) ([]ragapi.DocumentInfo, error)
	UploadDocument(ctx context.Context, filename string, content io.Reader) (ragapi.UploadResponse, error)
	ActivateDocument(ctx context.Context, filename string) (ragapi.StatusResponse, error)
	ResetMemory(ctx context.Context) (ragapi.StatusResponse, error)
}

type Config struct {
	// PollInterval is the period between health probes.
	PollInterval time.Duration
	// ProbeTimeout bounds a single probe; keep it below PollInterval.
	ProbeTimeout time.Duration
	// RequestTimeout bounds every other call. Answers can take a while.
	RequestTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		PollInterval:   5 * time.Second,
		ProbeTimeout:   3 * time.Second,
		RequestTimeout: 120 * time.Second,
	}
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = minDuration(def.ProbeTimeout, c.PollInterval)
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	return c
}

// runtime is what every component shares: the root context, the service, a
// read view of the store and the resolved base address.
type runtime struct {
	ctx    context.Context
	svc    Service
	store  *session.Store
	cfg    Config
	base   string
	logger zerolog.Logger
}

func (rt *runtime) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(rt.ctx, rt.cfg.RequestTimeout)
}

type Controller struct {
	rt     *runtime
	cancel context.CancelFunc
	closed bool

	monitor    *Monitor
	sync       *Synchronizer
	dispatcher *Dispatcher
	documents  *Documents
	resetter   *Resetter
}

type Option func(*Controller)

// WithTicker replaces tea.Tick for the health probe schedule.
func WithTicker(tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd) Option {
	return func(c *Controller) {
		if tick != nil {
			c.monitor.tick = tick
		}
	}
}

// New wires the components over store. It claims every writer of store, so a
// store can back a single controller only.
func New(svc Service, store *session.Store, cfg Config, logger zerolog.Logger, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	base := ""
	if u := svc.BaseURL(); u != nil {
		base = u.String()
	}
	rt := &runtime{
		ctx:    ctx,
		svc:    svc,
		store:  store,
		cfg:    cfg.normalized(),
		base:   base,
		logger: logger,
	}

	c := &Controller{rt: rt, cancel: cancel}
	c.sync = newSynchronizer(rt, store.ClaimConversation())
	c.documents = newDocuments(rt, store.ClaimDocuments(), c.sync)
	c.dispatcher = newDispatcher(rt, store.ClaimQuery(), c.sync)
	c.resetter = newResetter(rt, store.ClaimReset(), c.sync)
	c.monitor = newMonitor(rt, store.ClaimStatus(), func() tea.Cmd {
		return tea.Batch(c.sync.Refresh(), c.documents.RefreshListing())
	})
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init starts the connectivity monitor: one probe now, then one per period.
func (c *Controller) Init() tea.Cmd {
	if c.closed {
		return nil
	}
	return c.monitor.Start()
}

// Update applies the result of a previously returned command and returns
// follow-up work. Messages that do not belong to the controller are ignored,
// as is everything once the controller is closed.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	if c.closed {
		return nil
	}
	switch msg := msg.(type) {
	case TickMsg:
		return c.monitor.handleTick()
	case ProbeResultMsg:
		return c.monitor.handleResult(msg)
	case HistoryLoadedMsg:
		return c.sync.handle(msg)
	case ListingLoadedMsg:
		return c.documents.handleListing(msg)
	case AskDoneMsg:
		return c.dispatcher.handle(msg)
	case UploadDoneMsg:
		return c.documents.handleUpload(msg)
	case ActivateDoneMsg:
		return c.documents.handleActivate(msg)
	case ResetDoneMsg:
		return c.resetter.handle(msg)
	}
	return nil
}

// Close cancels every outstanding request and stops the probe schedule.
// Results that still arrive afterwards are dropped by Update.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	c.rt.logger.Debug().Msg("controller closed")
}

func (c *Controller) Closed() bool { return c.closed }

func (c *Controller) Store() *session.Store { return c.rt.store }

func (c *Controller) BaseURL() string { return c.rt.base }

func (c *Controller) Probe() tea.Cmd {
	if c.closed {
		return nil
	}
	return c.monitor.Probe()
}

func (c *Controller) RefreshHistory() tea.Cmd {
	if c.closed {
		return nil
	}
	return c.sync.Refresh()
}

func (c *Controller) RefreshListing() tea.Cmd {
	if c.closed {
		return nil
	}
	return c.documents.RefreshListing()
}

// SetQuestion mirrors the input control into the pending question.
func (c *Controller) SetQuestion(text string) {
	c.dispatcher.SetQuestion(text)
}

func (c *Controller) Ask(question string) tea.Cmd {
	if c.closed {
		return nil
	}
	return c.dispatcher.Ask(question)
}

func (c *Controller) Upload(path string) tea.Cmd {
	if c.closed {
		return nil
	}
	return c.documents.Upload(path)
}

func (c *Controller) Activate(filename string) tea.Cmd {
	if c.closed {
		return nil
	}
	return c.documents.Activate(filename)
}

func (c *Controller) ResetMemory() tea.Cmd {
	if c.closed {
		return nil
	}
	return c.resetter.Reset()
}

// sequence orders the results of one kind of request.
type sequence struct {
	issued  uint64
	applied uint64
}

func (s *sequence) next() uint64 {
	s.issued++
	return s.issued
}

func (s *sequence) isLatest(n uint64) bool { return n == s.issued }

// advance accepts n if nothing newer has been applied yet.
func (s *sequence) advance(n uint64) bool {
	if n <= s.applied {
		return false
	}
	s.applied = n
	return true
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
