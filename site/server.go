// Package main serves the src directory next to the executable over HTTP on port 7100.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/f4ah6o/srcserve/internal/config"
	"github.com/f4ah6o/srcserve/internal/fileserver"
	"github.com/f4ah6o/srcserve/internal/server"
)

func main() {
	programDir, err := config.ProgramDir()
	if err != nil {
		log.Fatalf("Failed to locate program directory: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.Default(), []string{programDir, sourceDir()}, os.Stdout); err != nil {
		stop()
		log.Fatalf("Server error: %v", err)
	}
}

// sourceDir is the directory this file was compiled from. It holds src when
// the server is started with go run, where the executable lives in the build cache.
func sourceDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return filepath.Dir(file)
}

// run resolves the serving root in the first of programDirs holding one, binds
// the listener and serves until ctx is done. Nothing is bound when no root is found.
func run(ctx context.Context, cfg config.Config, programDirs []string, stdout io.Writer) error {
	root, err := cfg.LocateRoot(programDirs...)
	if err != nil {
		return err
	}
	if err := os.Chdir(root); err != nil {
		return fmt.Errorf("enter serving root: %w", err)
	}

	handler, err := fileserver.New(root, fileserver.Options{IndexFiles: cfg.IndexFiles})
	if err != nil {
		return err
	}
	defer handler.Close()
	log.Printf("Serving %s", handler.Root())

	srv, err := server.Listen(cfg, handler)
	if err != nil {
		return err
	}

	if err := server.PrintBanner(stdout, srv.Addr()); err != nil {
		log.Printf("Failed to print banner: %v", err)
	}

	if err := srv.Serve(ctx); err != nil {
		return err
	}
	log.Println("Server stopped")
	return nil
}
