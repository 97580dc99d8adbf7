// Package cli implements the interactive vaultctl console: a REPL that
// drives the typed API client through the session manager and the query
// cache.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/monacovault/vaultctl/internal/client/api"
	"github.com/monacovault/vaultctl/internal/client/cache"
	"github.com/monacovault/vaultctl/internal/client/config"
	"github.com/monacovault/vaultctl/internal/client/models"
	"github.com/monacovault/vaultctl/internal/client/session"
	"github.com/monacovault/vaultctl/internal/client/store"
	"github.com/monacovault/vaultctl/internal/client/transport"
	"github.com/monacovault/vaultctl/internal/logging"
)

// App wires the client layers together and hosts the REPL command handlers.
type App struct {
	config *config.Config
	sess   *session.Manager
	api    *api.Client
	cache  *cache.Cache
	store  *store.Store
	reader *bufio.Reader
	out    io.Writer
	logger logging.Logger
}

// NewApp builds the full client stack: durable store, session manager,
// transport, endpoint catalog and query cache.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.NewSlogLogger(slog.Default())

	st, err := store.Open(ctx, c.DatabaseDSN, c.DeviceSecretPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	app := &App{
		config: c,
		store:  st,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		logger: logger,
	}

	sess := session.NewManager(st,
		session.WithLogger(logger),
		session.WithExpiryHook(func(reason string) {
			fmt.Fprintf(app.out, "\n! %s\n", reason)
		}),
	)

	t := transport.New(c.ServerEndpointURL,
		transport.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		transport.WithTokenSource(sess.Token),
		transport.WithLogger(logger),
		transport.WithAuthFailureHook(sess.HandleAuthFailure),
	)
	apiClient := api.New(t)
	sess.BindAPI(apiClient)

	app.sess = sess
	app.api = apiClient
	app.cache = cache.New(cache.DefaultPolicy(),
		cache.WithTokenSource(sess.Token),
		cache.WithLogger(logger),
	)
	return app, nil
}

// Run restores the persisted session, then hands control to the REPL.
// Session verification completes (success or failure) before any command
// that reads tenant, user or file data can run.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	if err := a.sess.Bootstrap(ctx); err != nil {
		a.logger.Warn(ctx, "session restore failed", "error", err)
	}
	if user := a.sess.User(); user != nil {
		fmt.Fprintf(a.out, "Welcome back, %s\n", user.Email)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.sess.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	user := a.sess.User()
	return user != nil && user.Role == models.RoleAdmin
}

func (a *App) status() string {
	user := a.sess.User()
	if user == nil {
		return "not logged in"
	}
	return user.Email
}
