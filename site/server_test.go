package main

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/fatih/color"

	"github.com/f4ah6o/srcserve/internal/config"
)

func TestRunMissingRoot(t *testing.T) {
	// Hold a port so we can tell whether run tried to bind it.
	held, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := held.Addr().(*net.TCPAddr).Port
	held.Close()

	cfg := config.Default()
	cfg.Host = "127.0.0.1"
	cfg.Port = port

	var stdout bytes.Buffer
	err = run(context.Background(), cfg, []string{t.TempDir(), t.TempDir()}, &stdout)
	if !errors.Is(err, config.ErrRootNotFound) {
		t.Fatalf("run() error = %v, want %v", err, config.ErrRootNotFound)
	}
	if stdout.Len() != 0 {
		t.Errorf("run() printed %q before failing", stdout.String())
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(cfg.Host, strconv.Itoa(port)))
	if err != nil {
		t.Fatalf("port %d left bound after failed startup: %v", port, err)
	}
	ln.Close()
}

func TestRunServesUntilCancelled(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Chdir(wd)

	programDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(programDir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	if err := run(ctx, cfg, []string{t.TempDir(), programDir}, &stdout); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	want := []byte("Server running at http://127.0.0.1:")
	if !bytes.HasPrefix(stdout.Bytes(), want) {
		t.Errorf("banner = %q, want prefix %q", stdout.String(), want)
	}
	if !bytes.Contains(stdout.Bytes(), []byte("Press Ctrl+C to stop the server\n")) {
		t.Errorf("banner = %q, missing stop hint", stdout.String())
	}

	got, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	wantDir, _ := filepath.EvalSymlinks(filepath.Join(programDir, "src"))
	gotDir, _ := filepath.EvalSymlinks(got)
	if gotDir != wantDir {
		t.Errorf("working directory = %q, want %q", gotDir, wantDir)
	}
}

func TestSourceDir(t *testing.T) {
	dir := sourceDir()
	if dir == "" {
		t.Fatal("sourceDir() is empty")
	}
	if _, err := os.Stat(filepath.Join(dir, "server.go")); err != nil {
		t.Errorf("sourceDir() = %q does not hold server.go: %v", dir, err)
	}
}
