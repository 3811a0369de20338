package main

import (
	"bufio"
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/naveenspark/folio/internal/stubapi"
)

// withEnv points folio at a fresh stub backend and a temp session database.
func withEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())

	stub := stubapi.New(stubapi.Config{Username: "admin", Password: "secret", Seed: true}, nil)
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("FOLIO_API_URL", srv.URL)
	t.Setenv("FOLIO_SESSION_PATH", filepath.Join(dir, "session.db"))
	t.Setenv("FOLIO_LOG_FILE", filepath.Join(dir, "folio.log"))
	t.Setenv("FOLIO_LOG_LEVEL", "debug")
}

func withInput(t *testing.T, username, password string) {
	t.Helper()
	prevIn, prevPw := stdin, readPassword
	stdin = strings.NewReader(username + "\n")
	readPassword = func(*bufio.Reader) (string, error) { return password, nil }
	t.Cleanup(func() { stdin, readPassword = prevIn, prevPw })
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(t.Context(), args, &out)
	return out.String(), err
}

func TestVersion(t *testing.T) {
	for _, arg := range []string{"--version", "version", "-v"} {
		out, err := runCmd(t, arg)
		if err != nil {
			t.Fatalf("run(%s): %v", arg, err)
		}
		if out != "folio dev\n" {
			t.Errorf("run(%s) = %q, want %q", arg, out, "folio dev\n")
		}
	}
}

func TestHelp(t *testing.T) {
	out, err := runCmd(t, "help")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"folio login", "folio stub", "FOLIO_API_URL"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	withEnv(t)
	_, err := runCmd(t, "frobnicate")
	if err == nil || !strings.Contains(err.Error(), "frobnicate") {
		t.Errorf("err = %v, want unknown command", err)
	}
}

func TestInvalidConfig(t *testing.T) {
	withEnv(t)
	t.Setenv("FOLIO_API_URL", "not a url")
	if _, err := runCmd(t, "whoami"); err == nil {
		t.Error("expected config error")
	}
}

func TestLoginWhoamiLogout(t *testing.T) {
	withEnv(t)
	withInput(t, "admin", "secret")

	out, err := runCmd(t, "whoami")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Not signed in") {
		t.Errorf("whoami before login = %q", out)
	}

	out, err = runCmd(t, "login")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Signed in as admin (admin)") {
		t.Errorf("login output = %q", out)
	}

	// A new process reads the session back from disk.
	out, err = runCmd(t, "whoami")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "admin (admin)") || !strings.Contains(out, "left") {
		t.Errorf("whoami = %q, want user and remaining time", out)
	}

	out, err = runCmd(t, "logout")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Signed out.") {
		t.Errorf("logout = %q", out)
	}

	out, _ = runCmd(t, "whoami")
	if !strings.Contains(out, "Not signed in") {
		t.Errorf("whoami after logout = %q", out)
	}
	out, _ = runCmd(t, "logout")
	if !strings.Contains(out, "Already signed out.") {
		t.Errorf("second logout = %q", out)
	}
}

func TestLoginUsernameArg(t *testing.T) {
	withEnv(t)
	withInput(t, "ignored", "secret")

	out, err := runCmd(t, "login", "admin")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if strings.Contains(out, "Username:") {
		t.Errorf("username given as argument should not be prompted: %q", out)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	withEnv(t)
	withInput(t, "admin", "nope")

	_, err := runCmd(t, "login")
	if err == nil || err.Error() != "Invalid credentials" {
		t.Fatalf("err = %v, want Invalid credentials", err)
	}
	out, _ := runCmd(t, "whoami")
	if !strings.Contains(out, "Not signed in") {
		t.Errorf("failed login must not store a session: %q", out)
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	withEnv(t)
	withInput(t, "", "")

	if _, err := runCmd(t, "login"); err == nil {
		t.Error("expected an error for empty credentials")
	}
}

func TestStubShutsDownOnCancel(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FOLIO_STUB_ADDR", "127.0.0.1:0")

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	var out bytes.Buffer
	go func() { done <- run(ctx, []string{"stub"}, &out) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("stub: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("stub did not stop after cancel")
	}
}
