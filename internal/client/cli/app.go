package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/crossclip/internal/client/state"
	"github.com/dmitrijs2005/crossclip/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

// Pinger reports whether the server is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators of an App. ReadLine is shared with anything
// else that reads the terminal, such as the sign-in prompter.
type Deps struct {
	Sync       *state.Sync
	Store      state.SharedItemStore
	Pinger     Pinger
	DeviceInfo func() string
	ReadLine   func() (string, bool)
	Out        io.Writer
	Logger     logging.Logger
	Now        func() time.Time
}

type App struct {
	sync       *state.Sync
	store      state.SharedItemStore
	pinger     Pinger
	deviceInfo func() string
	readLine   func() (string, bool)
	logger     logging.Logger
	now        func() time.Time

	mu   sync.Mutex
	out  io.Writer
	mode Mode
}

func NewApp(d Deps) *App {
	a := &App{
		sync:       d.Sync,
		store:      d.Store,
		pinger:     d.Pinger,
		deviceInfo: d.DeviceInfo,
		readLine:   d.ReadLine,
		logger:     d.Logger,
		now:        d.Now,
		out:        d.Out,
	}
	if a.out == nil {
		a.out = os.Stdout
	}
	if a.logger == nil {
		a.logger = logging.Nop()
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.readLine == nil {
		a.readLine = func() (string, bool) { return "", false }
	}
	return a
}

// Run starts the Sync machine and the status watcher, then blocks in the
// REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context, checkInterval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.println("Welcome to CrossClip CLI (type 'help' for commands)")

	a.sync.Start(ctx)
	if a.pinger != nil {
		go a.StartOnlineStatusWatcher(ctx, checkInterval)
	}

	if err := a.sync.Settle(ctx); err == nil {
		a.render(a.sync.Snapshot())
	}

	runREPL(ctx, a, a.status, a.readLine)
}

func (a *App) println(args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintln(a.out, args...)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) status() string {
	var parts []string
	if sess := a.sync.Snapshot().Session; sess != nil {
		parts = append(parts, sessionLabel(sess))
	}
	if m := a.currentMode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := a.pinger.Ping(pctx)
			cancel()

			if err != nil {
				a.logger.Debug(ctx, "ping failed", "error", err)
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
