package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/corpchat/internal/client/client"
	"github.com/dmitrijs2005/corpchat/internal/client/config"
	"github.com/dmitrijs2005/corpchat/internal/client/feed"
	"github.com/dmitrijs2005/corpchat/internal/client/guard"
	"github.com/dmitrijs2005/corpchat/internal/client/services"
	"github.com/dmitrijs2005/corpchat/internal/client/session"
	"github.com/dmitrijs2005/corpchat/internal/filex"
	"github.com/dmitrijs2005/corpchat/internal/logging"
)

type App struct {
	config      *config.Config
	store       *session.Store
	authService services.AuthService
	chatService services.ChatService
	logger      logging.Logger

	reader *bufio.Reader
	out    io.Writer
	outMu  sync.Mutex

	// view is only touched by the REPL goroutine.
	view guard.View

	pollerMu sync.Mutex
	poller   *feed.Poller
	closed   bool

	feedMu   sync.Mutex
	lastSeen int64

	closers []io.Closer
}

// NewApp opens the log file and the session database, restores the persisted
// session and builds the API client and services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logFile, err := filex.OpenAppend(c.LogFile)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger := logging.NewTextLogger(logFile, c.LogLevel)

	db, err := openDatabase(ctx, c.DatabasePath)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := session.NewStore(db, logger)
	if err := store.Initialize(ctx); err != nil {
		_ = db.Close()
		_ = logFile.Close()
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, store, nil, logger)
	if err != nil {
		_ = db.Close()
		_ = logFile.Close()
		return nil, err
	}

	app := newApp(c, store,
		services.NewAuthService(apiClient, store, logger),
		services.NewChatService(apiClient, store, logger),
		logger, os.Stdin, os.Stdout)
	app.closers = []io.Closer{db, logFile}
	return app, nil
}

func openDatabase(ctx context.Context, path string) (*sql.DB, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}
	return client.InitDatabase(ctx, path)
}

func newApp(c *config.Config, store *session.Store, as services.AuthService, cs services.ChatService,
	logger logging.Logger, in io.Reader, out io.Writer) *App {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &App{
		config:      c,
		store:       store,
		authService: as,
		chatService: cs,
		logger:      logger,
		reader:      bufio.NewReader(in),
		out:         out,
		view:        guard.Home,
	}
}

// Run shows the restored session, then runs the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to corpchat (type 'help' for commands)")

	start := guard.Home
	if a.isLoggedIn() {
		a.printf("Signed in as %s\n", a.username())
		start = guard.Chat
	}
	_ = a.navigate(ctx, start)

	runREPL(ctx, a, a.getStatus, a.reader)
	a.stopFeed()
}

// Close stops the feed for good and releases the database and the log file.
func (a *App) Close() error {
	a.pollerMu.Lock()
	a.closed = true
	a.pollerMu.Unlock()
	a.stopFeed()
	var firstErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

func (a *App) username() string {
	if id := a.store.Identity(); id != nil {
		return id.Username
	}
	return ""
}

func (a *App) getStatus() string {
	if cred, id := a.store.Snapshot(); cred != "" && id != nil {
		return fmt.Sprintf("%s@%s", id.Username, a.view)
	}
	return string(a.view)
}

// printf and println serialise output from the REPL and the feed goroutine.
func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

// reportError prints a failed operation the way a form would show it.
func (a *App) reportError(err error) {
	var fe *services.FormError
	if errors.As(err, &fe) && len(fe.Fields) > 0 {
		for _, name := range sortedKeys(fe.Fields) {
			a.printf("  %s: %s\n", name, fe.Fields[name])
		}
		return
	}
	a.printf("error: %s\n", err)
}
