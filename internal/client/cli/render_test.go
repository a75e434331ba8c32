package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/dmitrijs2005/crossclip/internal/client/models"
	"github.com/dmitrijs2005/crossclip/internal/client/state"
	"github.com/sebdah/goldie/v2"
)

var renderNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ago(d time.Duration) int64 { return renderNow.Add(-d).UnixMilli() }

func TestRenderSync_Golden(t *testing.T) {
	ann := &models.Session{UserID: "u1", Email: "ann@example.com"}
	hello := models.Item{ID: "a", Content: "hello", CreatedAt: ago(30 * time.Second), OriginDevice: "laptop (Mac/arm64, Go 1.25.1)"}

	tests := []struct {
		name string
		st   state.SyncState
	}{
		{"signed_out", state.SyncState{}},
		{"signed_out_with_error", state.SyncState{LastError: "Sign-in was rejected"}},
		{"empty_list", state.SyncState{Session: &models.Session{UserID: "u1", Email: "ann@example.com", DisplayName: "Ann"}}},
		{"items", state.SyncState{
			Session: ann,
			Items: []models.Item{
				hello,
				{ID: "b", Content: "line one\nline two\n", CreatedAt: ago(5 * time.Minute)},
				{ID: "c", Content: "old", CreatedAt: ago(3 * time.Hour), OriginDevice: "pc (Windows/amd64, Go 1.24)"},
				{ID: "d", Content: "ancient", CreatedAt: ago(50 * time.Hour), OriginDevice: "phone (Android/arm64, Go 1.25)"},
			},
		}},
		{"refresh_error", state.SyncState{
			Session:   ann,
			Items:     []models.Item{hello},
			LastError: "Server unavailable",
			Retry:     func() {},
		}},
		{"busy", state.SyncState{Session: ann, Busy: true}},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			renderSync(&buf, tt.st, renderNow)
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestSessionLabel(t *testing.T) {
	if got := sessionLabel(&models.Session{UserID: "u1"}); got != "u1" {
		t.Fatalf("label = %q, want u1", got)
	}
	if got := sessionLabel(&models.Session{UserID: "u1", DisplayName: "Ann"}); got != "u1" {
		t.Fatalf("label = %q, want u1 when email is missing", got)
	}
}
