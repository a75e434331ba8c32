package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/crossclip/internal/client/models"
	"github.com/dmitrijs2005/crossclip/internal/common"
	"github.com/dmitrijs2005/crossclip/internal/logging"
)

const (
	msgNothingToShare = "Nothing to share"
	msgSignInFirst    = "Please sign in first"
)

// ComposerState is an immutable snapshot of a Composer.
type ComposerState struct {
	Draft     string
	Busy      bool
	LastError string
	Closed    bool
}

// ComposerEvent is one of UpdateDraft, Submit and Cancel.
type ComposerEvent interface{ isComposerEvent() }

type (
	UpdateDraft struct{ Text string }
	Submit      struct{}
	Cancel      struct{}
)

func (UpdateDraft) isComposerEvent() {}
func (Submit) isComposerEvent()      {}
func (Cancel) isComposerEvent()      {}

type composerEnvelope struct {
	ctx context.Context
	ev  ComposerEvent
}

// Composer edits and submits one shared item. It is single use: once
// Closed, further events are ignored.
type Composer struct {
	store      SharedItemStore
	deviceInfo func() string
	logger     logging.Logger
	now        func() time.Time
	onClosed   func(ctx context.Context)

	events    chan composerEnvelope
	done      chan struct{}
	closeOnce sync.Once

	mu    sync.RWMutex
	state ComposerState

	hub hub[ComposerState]
}

// NewComposer starts a composer. deviceInfo stamps OriginDevice on the
// submitted item.
func NewComposer(store SharedItemStore, deviceInfo func() string, opts ...Option) *Composer {
	o := buildOptions(opts)
	if deviceInfo == nil {
		deviceInfo = func() string { return "" }
	}
	c := &Composer{
		store:      store,
		deviceInfo: deviceInfo,
		logger:     o.logger.With("machine", "composer"),
		now:        o.now,
		onClosed:   o.onClosed,
		events:     make(chan composerEnvelope, o.queueSize),
		done:       make(chan struct{}),
	}
	go c.run()
	return c
}

// OnEvent queues ev. Store calls made for it use ctx.
func (c *Composer) OnEvent(ctx context.Context, ev ComposerEvent) error {
	if ev == nil {
		return errors.New("nil event")
	}
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.events <- composerEnvelope{ctx: ctx, ev: ev}:
		return nil
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Composer) Snapshot() ComposerState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Composer) Subscribe() (<-chan ComposerState, func()) {
	// Holding mu keeps update from publishing between reading the state and
	// registering the subscriber.
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hub.subscribe(c.state)
}

// Close stops the owner goroutine without invoking the OnClosed hook. A
// composer closes itself after Submit succeeds or Cancel.
func (c *Composer) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Composer) stopped() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Composer) run() {
	defer c.hub.close()

	for {
		select {
		case env := <-c.events:
			if c.stopped() {
				return
			}
			c.handle(env.ctx, env.ev)
		case <-c.done:
			return
		}
	}
}

func (c *Composer) update(fn func(st *ComposerState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	c.hub.publish(c.state)
}

func (c *Composer) handle(ctx context.Context, ev ComposerEvent) {
	if c.state.Closed {
		return
	}
	c.logger.Debug(ctx, "event", "type", fmt.Sprintf("%T", ev))

	switch e := ev.(type) {
	case UpdateDraft:
		c.update(func(st *ComposerState) { st.Draft = e.Text })
	case Submit:
		c.submit(ctx)
	case Cancel:
		c.update(func(st *ComposerState) {
			st.Draft = ""
			st.LastError = ""
			st.Closed = true
		})
		c.closed(ctx)
	}
}

func (c *Composer) submit(ctx context.Context) {
	draft := c.state.Draft

	if strings.TrimSpace(draft) == "" {
		c.update(func(st *ComposerState) { st.LastError = msgNothingToShare })
		return
	}
	if len(draft) > common.MaxContentBytes {
		c.update(func(st *ComposerState) { st.LastError = common.ErrorContentTooLarge.Error() })
		return
	}

	c.update(func(st *ComposerState) {
		st.Busy = true
		st.LastError = ""
	})

	sess, err := c.store.CurrentSession(ctx)
	if c.stopped() {
		return
	}
	if err != nil || sess == nil {
		c.logger.Info(ctx, "submit without session", "error", err)
		c.update(func(st *ComposerState) {
			st.Busy = false
			st.LastError = Message(NewError(ErrNotSignedIn, msgSignInFirst))
		})
		return
	}

	item := models.Item{
		Content:      draft,
		CreatedAt:    c.now().UnixMilli(),
		OwnerID:      sess.UserID,
		OriginDevice: c.deviceInfo(),
	}

	id, err := c.store.AddItem(ctx, item)
	if c.stopped() {
		return
	}
	if err != nil {
		c.logger.Warn(ctx, "submit failed", "error", err)
		c.update(func(st *ComposerState) {
			st.Busy = false
			st.LastError = Message(err)
		})
		return
	}

	c.logger.Info(ctx, "item shared", "id", id)
	c.update(func(st *ComposerState) {
		st.Busy = false
		st.Draft = ""
		st.Closed = true
	})
	c.closed(ctx)
}

// closed runs the hook and stops the composer. Subscribers see the Closed
// snapshot before their channel is closed.
func (c *Composer) closed(ctx context.Context) {
	if c.onClosed != nil {
		c.onClosed(ctx)
	}
	c.Close()
}
