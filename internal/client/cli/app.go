package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/clouddrive/internal/client/api"
	"github.com/dmitrijs2005/clouddrive/internal/client/config"
	"github.com/dmitrijs2005/clouddrive/internal/client/library"
	"github.com/dmitrijs2005/clouddrive/internal/client/localdb"
	"github.com/dmitrijs2005/clouddrive/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/clouddrive/internal/client/session"
	"github.com/dmitrijs2005/clouddrive/internal/client/share"
	"github.com/dmitrijs2005/clouddrive/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	session *session.Manager
	anon    *api.Client
	library *library.View
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the local database, restores any saved session and wires the
// API clients. Commands read their input from in.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader) (*App, error) {
	db, err := localdb.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	anon, err := api.New(c.ServerBaseURL, api.WithLogger(log))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sm := session.NewManager(anon, metadata.NewSQLiteRepository(db), log)
	if err := sm.Restore(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	authed, err := api.New(c.ServerBaseURL, api.WithLogger(log), api.WithTokenSource(sm))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	lib := library.New(authed, library.Options{
		WebOrigin:  c.WebOrigin,
		CloseDelay: c.CloseDelay,
		Clipboard:  share.SystemClipboard{},
		Log:        log,
	})

	return &App{
		config:  c,
		log:     log,
		db:      db,
		session: sm,
		anon:    anon,
		library: lib,
		reader:  bufio.NewReader(in),
		out:     os.Stdout,
	}, nil
}

// Run opens the share given on the command line, if any, then runs the REPL
// until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to CloudDrive (type 'help' for commands)")

	if a.config.ShareToken != "" {
		report(a.Open(ctx, a.config.ShareToken))
	}
	if u, ok := a.session.User(); ok {
		printlnFn(fmt.Sprintf("Welcome back, %s!", u.Name))
		report(a.List(ctx, ""))
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	if u, ok := a.session.User(); ok {
		return u.Email
	}
	return "guest"
}
