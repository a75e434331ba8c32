package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/crossclip/internal/client/models"
	"github.com/dmitrijs2005/crossclip/internal/logging"
)

// SyncState is an immutable snapshot of the Sync machine. LastError is
// empty when there is no error; Retry is nil unless the last error came
// from a refresh.
type SyncState struct {
	Session      *models.Session
	Items        []models.Item
	Busy         bool
	LastError    string
	Retry        func()
	ComposerOpen bool
}

func (s SyncState) clone() SyncState {
	out := s
	if s.Session != nil {
		sess := *s.Session
		out.Session = &sess
	}
	if s.Items != nil {
		out.Items = append([]models.Item(nil), s.Items...)
	}
	return out
}

// SyncEvent is one of SignIn, SignOut, Refresh, Delete, OpenComposer and
// CloseComposer.
type SyncEvent interface{ isSyncEvent() }

type (
	SignIn        struct{}
	SignOut       struct{}
	Refresh       struct{}
	Delete        struct{ ID string }
	OpenComposer  struct{}
	CloseComposer struct{}

	startup struct{}
	barrier struct{ done chan struct{} }
)

func (SignIn) isSyncEvent()        {}
func (SignOut) isSyncEvent()       {}
func (Refresh) isSyncEvent()       {}
func (Delete) isSyncEvent()        {}
func (OpenComposer) isSyncEvent()  {}
func (CloseComposer) isSyncEvent() {}
func (startup) isSyncEvent()       {}
func (barrier) isSyncEvent()       {}

// Sync sequences session and list operations. Create it with NewSync and
// call Start once.
type Sync struct {
	store  SharedItemStore
	logger logging.Logger

	events    chan SyncEvent
	done      chan struct{}
	closeOnce sync.Once
	startOnce sync.Once

	// chained events run before anything queued by callers
	pending []SyncEvent

	mu    sync.RWMutex
	state SyncState

	hub   hub[SyncState]
	retry func()
}

func NewSync(store SharedItemStore, opts ...Option) *Sync {
	o := buildOptions(opts)
	s := &Sync{
		store:  store,
		logger: o.logger.With("machine", "sync"),
		events: make(chan SyncEvent, o.queueSize),
		done:   make(chan struct{}),
	}
	s.retry = func() {
		select {
		case s.events <- Refresh{}:
		case <-s.done:
		}
	}
	return s
}

// Start launches the owner goroutine and queries the current session.
// Store calls use ctx; cancelling it stops the machine like Close.
func (s *Sync) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		go s.run(ctx)
	})
}

// OnEvent queues ev. It blocks while the queue is full.
func (s *Sync) OnEvent(ctx context.Context, ev SyncEvent) error {
	if ev == nil {
		return errors.New("nil event")
	}
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.events <- ev:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Settle blocks until every event queued before the call has been handled,
// together with the events those handlers chained.
func (s *Sync) Settle(ctx context.Context) error {
	b := barrier{done: make(chan struct{})}
	if err := s.OnEvent(ctx, b); err != nil {
		return err
	}
	select {
	case <-b.done:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Await queues ev and waits for it to settle.
func (s *Sync) Await(ctx context.Context, ev SyncEvent) error {
	if err := s.OnEvent(ctx, ev); err != nil {
		return err
	}
	return s.Settle(ctx)
}

func (s *Sync) Snapshot() SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe delivers the current snapshot and then every change. Slow
// readers only see the latest snapshot. The channel is closed by cancel or
// when the machine stops.
func (s *Sync) Subscribe() (<-chan SyncState, func()) {
	// Holding mu keeps update from publishing between reading the state and
	// registering the subscriber.
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hub.subscribe(s.state.clone())
}

// Close stops the machine. A store call in flight runs to completion but its
// result is dropped.
func (s *Sync) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Sync) stopped(ctx context.Context) bool {
	select {
	case <-s.done:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func (s *Sync) run(ctx context.Context) {
	defer s.hub.close()

	s.pending = append(s.pending, startup{})
	for {
		var ev SyncEvent
		if len(s.pending) > 0 {
			ev, s.pending = s.pending[0], s.pending[1:]
		} else {
			select {
			case ev = <-s.events:
			case <-s.done:
				return
			case <-ctx.Done():
				return
			}
		}
		if s.stopped(ctx) {
			return
		}
		s.handle(ctx, ev)
	}
}

func (s *Sync) update(fn func(st *SyncState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	s.hub.publish(s.state.clone())
}

func (s *Sync) chain(ev SyncEvent) {
	s.pending = append(s.pending, ev)
}

func (s *Sync) handle(ctx context.Context, ev SyncEvent) {
	if b, ok := ev.(barrier); ok {
		close(b.done)
		return
	}
	s.logger.Debug(ctx, "event", "type", fmt.Sprintf("%T", ev))

	switch e := ev.(type) {
	case startup:
		s.handleStartup(ctx)
	case SignIn:
		s.handleSignIn(ctx)
	case SignOut:
		s.handleSignOut(ctx)
	case Refresh:
		s.handleRefresh(ctx)
	case Delete:
		s.handleDelete(ctx, e.ID)
	case OpenComposer:
		s.update(func(st *SyncState) { st.ComposerOpen = true })
	case CloseComposer:
		s.update(func(st *SyncState) { st.ComposerOpen = false })
		s.chain(Refresh{})
	default:
		s.logger.Warn(ctx, "unknown event", "type", fmt.Sprintf("%T", ev))
	}
}

func (s *Sync) handleStartup(ctx context.Context) {
	s.update(func(st *SyncState) { st.Busy = true })

	sess, err := s.store.CurrentSession(ctx)
	if s.stopped(ctx) {
		return
	}

	if err != nil {
		s.logger.Warn(ctx, "session lookup failed", "error", err)
		s.update(func(st *SyncState) {
			st.Busy = false
			st.Session = nil
			st.LastError = Message(err)
			st.Retry = nil
		})
		return
	}

	s.update(func(st *SyncState) {
		st.Busy = false
		st.Session = sess
	})
	if sess != nil {
		s.logger.Info(ctx, "session restored", "user_id", sess.UserID)
		s.chain(Refresh{})
	}
}

func (s *Sync) handleSignIn(ctx context.Context) {
	if s.state.Session != nil {
		return
	}

	s.update(func(st *SyncState) {
		st.Busy = true
		st.LastError = ""
		st.Retry = nil
	})

	sess, err := s.store.SignIn(ctx)
	if s.stopped(ctx) {
		return
	}

	switch {
	case errors.Is(Kind(err), ErrUserCancelled):
		s.logger.Info(ctx, "sign-in cancelled")
		s.update(func(st *SyncState) { st.Busy = false })
	case err != nil:
		s.logger.Warn(ctx, "sign-in failed", "error", err)
		s.update(func(st *SyncState) {
			st.Busy = false
			st.LastError = Message(err)
		})
	case sess == nil:
		s.update(func(st *SyncState) {
			st.Busy = false
			st.LastError = Message(NewError(ErrAuthFailed, "sign-in returned no session"))
		})
	default:
		s.logger.Info(ctx, "signed in", "user_id", sess.UserID)
		s.update(func(st *SyncState) {
			st.Busy = false
			st.Session = sess
		})
		s.chain(Refresh{})
	}
}

func (s *Sync) handleRefresh(ctx context.Context) {
	if s.state.Session == nil {
		return
	}
	ownerID := s.state.Session.UserID

	s.update(func(st *SyncState) { st.Busy = true })

	items, err := s.store.ListItems(ctx, ownerID)
	if s.stopped(ctx) {
		return
	}

	if err != nil {
		s.logger.Warn(ctx, "refresh failed", "error", err)
		s.update(func(st *SyncState) {
			st.Busy = false
			st.LastError = Message(err)
			st.Retry = s.retry
		})
		return
	}

	sorted := append([]models.Item{}, items...)
	models.SortByCreatedDesc(sorted)

	s.logger.Debug(ctx, "refreshed", "count", len(sorted))
	s.update(func(st *SyncState) {
		st.Items = sorted
		st.Busy = false
		st.LastError = ""
		st.Retry = nil
	})
}

// handleDelete leaves Busy alone; the list stays usable while it runs.
func (s *Sync) handleDelete(ctx context.Context, id string) {
	if s.state.Session == nil {
		return
	}

	err := s.store.DeleteItem(ctx, id)
	if s.stopped(ctx) {
		return
	}

	if err != nil {
		s.logger.Warn(ctx, "delete failed", "id", id, "error", err)
		s.update(func(st *SyncState) {
			st.LastError = Message(err)
			st.Retry = nil
		})
		return
	}

	s.logger.Info(ctx, "deleted", "id", id)
	s.update(func(st *SyncState) {
		st.LastError = ""
		st.Retry = nil
	})
	s.chain(Refresh{})
}

func (s *Sync) handleSignOut(ctx context.Context) {
	if s.state.Session == nil {
		return
	}

	s.update(func(st *SyncState) { st.Busy = true })

	err := s.store.SignOut(ctx)
	if s.stopped(ctx) {
		return
	}

	if err != nil {
		s.logger.Warn(ctx, "sign-out failed", "error", err)
		s.update(func(st *SyncState) {
			st.Busy = false
			st.LastError = Message(err)
			st.Retry = nil
		})
		return
	}

	s.logger.Info(ctx, "signed out")
	s.pending = nil
	s.update(func(st *SyncState) { *st = SyncState{} })
}
