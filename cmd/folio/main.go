package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/naveenspark/folio/internal/auth"
	"github.com/naveenspark/folio/internal/config"
	"github.com/naveenspark/folio/internal/logging"
	"github.com/naveenspark/folio/internal/router"
	"github.com/naveenspark/folio/internal/session"
	"github.com/naveenspark/folio/internal/stubapi"
	"github.com/naveenspark/folio/internal/tui"
	"github.com/naveenspark/folio/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// stdin is where the login prompt reads the username from.
var stdin io.Reader = os.Stdin

// readPassword reads a password without echoing it. Piped input is read as a plain line.
var readPassword = func(r *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		return string(b), err
	}
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "--version", "version", "-v":
		fmt.Fprintln(out, "folio "+version)
		return nil
	case "help", "--help", "-h":
		printHelp(out)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch cmd {
	case "stub":
		return runStub(ctx, cfg, out)
	case "login", "logout", "whoami", "":
	default:
		printHelp(out)
		return fmt.Errorf("unknown command %q", cmd)
	}

	e, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer e.close()

	switch cmd {
	case "login":
		return runLogin(ctx, e, args[1:], out)
	case "logout":
		return runLogout(ctx, e, out)
	case "whoami":
		return runWhoami(ctx, e, out)
	default:
		return runTUI(ctx, e)
	}
}

// env is everything a session command needs.
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *session.Store
	client  *client.Client
	closers []func() error
}

func setup(ctx context.Context, cfg *config.Config) (*env, error) {
	log, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, log: log}
	e.closers = append(e.closers, func() error {
		_ = log.Sync() //nolint:errcheck // sync fails on some file types
		return nil
	})

	var storage session.Storage = session.NewMemoryStorage()
	if cfg.Session.Path != "" {
		sqlite, err := session.OpenSQLite(ctx, cfg.Session.Path)
		if err != nil {
			return nil, err
		}
		storage = sqlite
		e.closers = append(e.closers, sqlite.Close)
	}
	e.store = session.NewStore(storage, log.Named("session"))
	e.client = client.New(cfg.API.BaseURL,
		client.WithAPIPrefix(cfg.API.Prefix),
		client.WithTokenSource(e.store.AuthToken),
		client.WithLogger(log.Named("client")),
	)
	return e, nil
}

func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			e.log.Warn("close", zap.Error(err))
		}
	}
}

func runLogin(ctx context.Context, e *env, args []string, out io.Writer) error {
	in := bufio.NewReader(stdin)

	username := ""
	if len(args) > 0 {
		username = args[0]
	} else {
		fmt.Fprint(out, "Username: ")
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	fmt.Fprint(out, "Password: ")
	password, err := readPassword(in)
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	svc := auth.New(ctx, e.client, e.store, nil, e.log.Named("auth"))
	res := svc.Login(ctx, username, password)
	if !res.Success {
		return errors.New(res.Message)
	}
	if u := svc.User(); u != nil {
		fmt.Fprintf(out, "Signed in as %s (%s)\n", u.Username, u.Role)
	} else {
		fmt.Fprintln(out, "Signed in.")
	}
	return nil
}

func runLogout(ctx context.Context, e *env, out io.Writer) error {
	svc := auth.New(ctx, e.client, e.store, nil, e.log.Named("auth"))
	if !svc.IsAuthenticated() {
		fmt.Fprintln(out, "Already signed out.")
		return nil
	}
	svc.Logout(ctx)
	svc.Wait()
	fmt.Fprintln(out, "Signed out.")
	return nil
}

func runWhoami(ctx context.Context, e *env, out io.Writer) error {
	token := e.store.AuthToken(ctx)
	if token == "" {
		fmt.Fprintln(out, "Not signed in. Run: folio login")
		return nil
	}

	name, role := "unknown", ""
	if u := e.store.User(ctx); u != nil {
		name, role = u.Username, u.Role
	}
	claims, err := session.ParseClaims(token)
	if err == nil && name == "unknown" && claims.Username != "" {
		name, role = claims.Username, claims.Role
	}
	if role != "" {
		name += " (" + role + ")"
	}
	fmt.Fprintln(out, name)

	if err != nil {
		fmt.Fprintln(out, "session: opaque token")
		return nil
	}
	d, ok := claims.ExpiresIn(time.Now())
	switch {
	case !ok:
		fmt.Fprintln(out, "session: no expiry")
	case d <= 0:
		fmt.Fprintln(out, "session: expired, run folio login")
	default:
		fmt.Fprintf(out, "session: %s left\n", d.Round(time.Minute))
	}
	return nil
}

func runTUI(ctx context.Context, e *env) error {
	history := router.NewHistory(router.Dashboard)
	svc := auth.New(ctx, e.client, e.store, history, e.log.Named("auth"))
	defer svc.Wait()

	app := tui.NewApp(ctx, tui.Options{
		Client:  e.client,
		Auth:    svc,
		Store:   e.store,
		History: history,
		SiteURL: e.cfg.API.SiteURL,
		Log:     e.log.Named("tui"),
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runStub(ctx context.Context, cfg *config.Config, out io.Writer) error {
	log, err := logging.New(cfg.Log.Level, "")
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	stub := stubapi.New(stubapi.Config{
		Username:       cfg.Stub.Username,
		Password:       cfg.Stub.Password,
		AllowedOrigins: []string{cfg.API.SiteURL},
		Seed:           true,
	}, log.Named("stub"))

	srv := &http.Server{
		Addr:              cfg.Stub.Addr,
		Handler:           stub.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	fmt.Fprintf(out, "stub backend on http://%s (user %q)\n", cfg.Stub.Addr, cfg.Stub.Username)

	select {
	case err := <-errCh:
		return fmt.Errorf("stub server: %w", err)
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("stub shutdown: %w", err)
	}
	log.Info("stub stopped")
	return nil
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `folio - back office for the portfolio site

Usage:
  folio                 Open the back office (interactive TUI)
  folio login [user]    Sign in and store the session
  folio logout          Clear the session
  folio whoami          Show the signed-in user
  folio stub            Run an in-memory backend
  folio --version       Show version

Environment (also read from .env):
  FOLIO_API_URL         backend root (default http://localhost:5000)
  FOLIO_API_PREFIX      API path (default /api/v1)
  FOLIO_SITE_URL        public site (default http://localhost:3000)
  FOLIO_SESSION_PATH    session database (default ~/.folio/session.db)
  FOLIO_LOG_LEVEL       debug, info, warn or error
  FOLIO_LOG_FILE        log file (default ~/.folio/folio.log)
  FOLIO_STUB_ADDR       stub listen address (default 127.0.0.1:5000)
`)
}
