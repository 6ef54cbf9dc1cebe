// Package config holds the fixed server configuration and resolves the serving root.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Defaults for the server. They are not configurable from flags or the environment.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 7100
	DefaultRootName        = "src"
	DefaultShutdownTimeout = 5 * time.Second
)

// DefaultIndexFiles are tried in order when a directory is requested.
var DefaultIndexFiles = []string{"index.html", "index.htm"}

var (
	// ErrRootNotFound is returned when the serving root does not exist.
	ErrRootNotFound = errors.New("serving root does not exist")
	// ErrRootNotDir is returned when the serving root exists but is not a directory.
	ErrRootNotDir = errors.New("serving root is not a directory")
)

// Config is the server configuration. It is built once at startup and never mutated.
type Config struct {
	// Host is the address the listener binds to ("0.0.0.0" means all interfaces).
	Host string
	// Port is the TCP port to listen on. Zero asks the OS for a free port.
	Port int
	// RootName is the name of the serving directory, relative to the program directory.
	RootName string
	// IndexFiles are the file names served in place of a directory listing.
	IndexFiles []string
	// ShutdownTimeout bounds how long in-flight requests may run after an interrupt.
	ShutdownTimeout time.Duration
}

// Default returns the fixed configuration the server runs with.
func Default() Config {
	return Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		RootName:        DefaultRootName,
		IndexFiles:      append([]string(nil), DefaultIndexFiles...),
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Addr returns the host:port pair to listen on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ResolveRoot returns the absolute serving root inside programDir and checks that it is a directory.
func (c Config) ResolveRoot(programDir string) (string, error) {
	root, err := filepath.Abs(filepath.Join(programDir, c.RootName))
	if err != nil {
		return "", fmt.Errorf("resolve serving root: %w", err)
	}

	info, err := os.Stat(root)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}
	if err != nil {
		return "", fmt.Errorf("stat serving root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrRootNotDir, root)
	}
	return root, nil
}

// LocateRoot resolves the serving root in the first of dirs that holds one.
// If none does, the error for the first directory is returned.
func (c Config) LocateRoot(dirs ...string) (string, error) {
	var first error
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		root, err := c.ResolveRoot(dir)
		if err == nil {
			return root, nil
		}
		if first == nil {
			first = err
		}
	}
	if first == nil {
		first = fmt.Errorf("%w: no program directory given", ErrRootNotFound)
	}
	return "", first
}

// ProgramDir returns the directory holding the running executable, with symlinks resolved.
func ProgramDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
