package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/crossclip/internal/client/models"
	"github.com/dmitrijs2005/crossclip/internal/client/state"
)

const unknownDevice = "unknown device"

func (a *App) render(st state.SyncState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	renderSync(a.out, st, a.now())
}

func renderSync(w io.Writer, st state.SyncState, now time.Time) {
	if st.Session == nil {
		fmt.Fprintln(w, "Not signed in. Type 'signin' to continue with Google.")
	} else {
		fmt.Fprintf(w, "Signed in as %s\n", sessionLabel(st.Session))
		renderItems(w, st.Items, now)
	}
	if st.Busy {
		fmt.Fprintln(w, "Working...")
	}
	if st.LastError != "" {
		if st.Retry != nil {
			fmt.Fprintf(w, "Error: %s (type 'retry')\n", st.LastError)
		} else {
			fmt.Fprintf(w, "Error: %s\n", st.LastError)
		}
	}
}

// renderItems prints one numbered entry per item. Continuation lines of
// multi-line content are indented under the first.
func renderItems(w io.Writer, items []models.Item, now time.Time) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Nothing shared yet. Type 'share' to add something.")
		return
	}

	nowMs := now.UnixMilli()
	for i, it := range items {
		lines := strings.Split(strings.TrimRight(it.Content, "\n"), "\n")
		prefix := fmt.Sprintf("%d. ", i+1)

		device := it.OriginDevice
		if device == "" {
			device = unknownDevice
		}

		fmt.Fprintf(w, "%s%s  · %s · %s\n", prefix, lines[0], device, models.FormatTimestamp(it.CreatedAt, nowMs))
		indent := strings.Repeat(" ", len(prefix))
		for _, l := range lines[1:] {
			fmt.Fprintf(w, "%s%s\n", indent, l)
		}
	}
}

func sessionLabel(s *models.Session) string {
	switch {
	case s.DisplayName != "" && s.Email != "":
		return fmt.Sprintf("%s <%s>", s.DisplayName, s.Email)
	case s.Email != "":
		return s.Email
	default:
		return s.UserID
	}
}
