package server

import (
	"io"
	"net"

	"github.com/fatih/color"
)

// PrintBanner announces the listening address and how to stop the server.
func PrintBanner(w io.Writer, addr net.Addr) error {
	colored := colorEnabled(w)
	if _, err := newColor(colored, color.FgGreen).Fprintf(w, "Server running at http://%s\n", addr); err != nil {
		return err
	}
	_, err := newColor(colored, color.Faint).Fprintln(w, "Press Ctrl+C to stop the server")
	return err
}
