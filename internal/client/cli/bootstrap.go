package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/crossclip/internal/client/client"
	"github.com/dmitrijs2005/crossclip/internal/client/config"
	"github.com/dmitrijs2005/crossclip/internal/client/device"
	"github.com/dmitrijs2005/crossclip/internal/client/identity"
	"github.com/dmitrijs2005/crossclip/internal/client/services"
	"github.com/dmitrijs2005/crossclip/internal/client/state"
	"github.com/dmitrijs2005/crossclip/internal/filex"
	"github.com/dmitrijs2005/crossclip/internal/logging"
)

const dbFileName = "crossclip.db"

// Bootstrap wires the local session database, the gRPC client, the Google
// identity provider and the Sync machine into an App reading from in. The
// returned close function releases the database and the connection.
func Bootstrap(ctx context.Context, cfg *config.Config, in *os.File, out, logOut io.Writer) (*App, func(), error) {
	logger := logging.NewText(logOut, logging.ParseLevel(cfg.LogLevel))

	dir, err := filex.EnsureDataDir(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewGRPCClient(cfg.ServerEndpointAddr, client.NewMetadataTokenStore(db))
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	scanner := bufio.NewScanner(in)
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		return scanner.Text(), true
	}

	prompter := &identity.TerminalPrompter{Out: out, Fd: int(in.Fd()), ReadLine: readLine}
	provider := identity.NewGoogleProvider(identity.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		AuthURL:      cfg.GoogleAuthURL,
		TokenURL:     cfg.GoogleTokenURL,
		RedirectURL:  cfg.RedirectURL,
	}, nil, prompter)

	store := services.NewItemStore(apiClient, provider, logger)
	machine := state.NewSync(store, state.WithLogger(logger))

	app := NewApp(Deps{
		Sync:       machine,
		Store:      store,
		Pinger:     apiClient,
		DeviceInfo: device.Info,
		ReadLine:   readLine,
		Out:        out,
		Logger:     logger,
	})

	closeFn := func() {
		machine.Close()
		if err := apiClient.Close(); err != nil {
			logger.Warn(ctx, "closing connection", "error", err)
		}
		if err := db.Close(); err != nil {
			logger.Warn(ctx, "closing database", "error", err)
		}
	}
	return app, closeFn, nil
}
