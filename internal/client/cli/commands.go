package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/dmitrijs2005/crossclip/internal/client/models"
	"github.com/dmitrijs2005/crossclip/internal/client/state"
)

const (
	draftEnd    = "."
	draftCancel = "cancel"
	resend      = "send"
)

var errNotSignedIn = errors.New("not signed in")

// writeClipboard is a test seam for the system clipboard.
var writeClipboard = clipboard.WriteAll

func (a *App) isSignedIn() bool {
	return a.sync.Snapshot().Session != nil
}

// await queues ev, waits for the Sync machine to settle and renders the
// result.
func (a *App) await(ctx context.Context, ev state.SyncEvent) error {
	if err := a.sync.Await(ctx, ev); err != nil {
		a.println("Error:", err)
		return err
	}
	a.render(a.sync.Snapshot())
	return nil
}

func (a *App) requireSession() error {
	if a.isSignedIn() {
		return nil
	}
	a.println("Please sign in first")
	return errNotSignedIn
}

func (a *App) SignIn(ctx context.Context) error {
	if sess := a.sync.Snapshot().Session; sess != nil {
		a.println("Already signed in as " + sessionLabel(sess))
		return nil
	}
	return a.await(ctx, state.SignIn{})
}

func (a *App) SignOut(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	return a.await(ctx, state.SignOut{})
}

func (a *App) List(context.Context) error {
	a.render(a.sync.Snapshot())
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	return a.await(ctx, state.Refresh{})
}

// Delete accepts a 1-based list number or an item id.
func (a *App) Delete(ctx context.Context, ref string) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	id := ref
	if _, err := strconv.Atoi(ref); err == nil {
		it, err := a.resolve(ref)
		if err != nil {
			return err
		}
		id = it.ID
	}
	return a.await(ctx, state.Delete{ID: id})
}

// Copy puts the content of the referenced item on the system clipboard.
func (a *App) Copy(ctx context.Context, ref string) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	it, err := a.resolve(ref)
	if err != nil {
		return err
	}
	if err := writeClipboard(it.Content); err != nil {
		a.logger.Warn(ctx, "clipboard write failed", "error", err)
		a.println("Error: clipboard unavailable:", err)
		return err
	}
	a.println("Copied to clipboard")
	return nil
}

// resolve maps a 1-based list number or an item id to an item of the
// current snapshot.
func (a *App) resolve(ref string) (models.Item, error) {
	items := a.sync.Snapshot().Items
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(items) {
			a.println(fmt.Sprintf("No item #%d, type 'list' to see the numbers", n))
			return models.Item{}, fmt.Errorf("item #%d out of range", n)
		}
		return items[n-1], nil
	}
	for _, it := range items {
		if it.ID == ref {
			return it, nil
		}
	}
	a.println(fmt.Sprintf("No item with id %s", ref))
	return models.Item{}, fmt.Errorf("item %s not found", ref)
}

func (a *App) Retry(ctx context.Context) error {
	retry := a.sync.Snapshot().Retry
	if retry == nil {
		a.println("Nothing to retry")
		return nil
	}
	retry()
	if err := a.sync.Settle(ctx); err != nil {
		a.println("Error:", err)
		return err
	}
	a.render(a.sync.Snapshot())
	return nil
}

// Share reads a draft and submits it through a Composer. After a failed
// submit the user may resend the same draft or discard it. Every attempt
// uses a fresh Composer; the last one closes through Submit or Cancel so
// the Sync machine refreshes once.
func (a *App) Share(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if err := a.sync.OnEvent(ctx, state.OpenComposer{}); err != nil {
		a.println("Error:", err)
		return err
	}

	a.println("Type the text to share and finish with a line containing only '.' ('cancel' discards it):")
	draft, ok := readDraft(a.readLine)

	for {
		c := a.newComposer()

		if !ok {
			awaitComposer(ctx, c, state.Cancel{})
			a.println("Discarded.")
			return a.settle(ctx)
		}

		st := awaitComposer(ctx, c, state.UpdateDraft{Text: draft}, state.Submit{})
		if st.Closed {
			a.println("Shared.")
			return a.settle(ctx)
		}
		c.Close()

		a.println("Error: " + st.LastError)
		a.println("Type 'send' to try again, anything else discards the draft:")
		line, more := a.readLine()
		ok = more && strings.TrimSpace(line) == resend
	}
}

func (a *App) settle(ctx context.Context) error {
	if err := a.sync.Settle(ctx); err != nil {
		return err
	}
	a.render(a.sync.Snapshot())
	return nil
}

func (a *App) newComposer() *state.Composer {
	return state.NewComposer(a.store, a.deviceInfo,
		state.WithLogger(a.logger),
		state.WithClock(a.now),
		state.WithOnClosed(func(ctx context.Context) {
			_ = a.sync.OnEvent(ctx, state.CloseComposer{})
		}),
	)
}

// awaitComposer sends events to c and returns the first snapshot that is
// either closed or carries an error. A closed composer is followed until
// its updates channel ends, so its OnClosed hook has run on return.
func awaitComposer(ctx context.Context, c *state.Composer, events ...state.ComposerEvent) state.ComposerState {
	updates, cancel := c.Subscribe()
	defer cancel()

	for _, ev := range events {
		if err := c.OnEvent(ctx, ev); err != nil {
			return c.Snapshot()
		}
	}

	var last state.ComposerState
	for {
		select {
		case st, ok := <-updates:
			if !ok {
				return last
			}
			last = st
			if !st.Closed && !st.Busy && st.LastError != "" {
				return st
			}
		case <-ctx.Done():
			return c.Snapshot()
		}
	}
}

// readDraft collects lines until a line holding only ".". It reports false
// when the user types "cancel" or input ends.
func readDraft(readLine func() (string, bool)) (string, bool) {
	var lines []string
	for {
		line, ok := readLine()
		if !ok {
			return "", false
		}
		switch strings.TrimSpace(line) {
		case draftEnd:
			return strings.Join(lines, "\n"), true
		case draftCancel:
			return "", false
		}
		lines = append(lines, strings.TrimRight(line, "\r"))
	}
}
