// Package fileserver serves the files below a single directory over HTTP.
//
// Requests map to names relative to the serving root. Regular files are sent
// with a Content-Type taken from their extension, directories are answered
// with their index file or a generated listing. Every filesystem access goes
// through an os.Root, so nothing outside the serving root is ever read.
package fileserver

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/f4ah6o/srcserve/internal/config"
	"github.com/f4ah6o/srcserve/internal/mimetypes"
)

// Options configures a Handler.
type Options struct {
	// IndexFiles are served in place of a directory listing, first match wins.
	IndexFiles []string
	// Types maps file names to content types. Defaults to mimetypes.Builtin().
	Types *mimetypes.Table
}

// file is what serveFile needs from an opened file.
type file interface {
	fs.File
	io.Seeker
}

// Handler is an http.Handler serving files from one directory.
type Handler struct {
	root       *os.Root
	indexFiles []string
	types      *mimetypes.Table
	open       func(name string) (file, error)
}

// New opens dir as the serving root.
func New(dir string, opts Options) (*Handler, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open serving root: %w", err)
	}

	h := &Handler{
		root:       root,
		indexFiles: opts.IndexFiles,
		types:      opts.Types,
	}
	if h.indexFiles == nil {
		h.indexFiles = config.DefaultIndexFiles
	}
	if h.types == nil {
		h.types = mimetypes.Builtin()
	}
	h.open = func(name string) (file, error) {
		f, err := root.Open(name)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return h, nil
}

// Root returns the serving root directory as given to New.
func (h *Handler) Root() string {
	return h.root.Name()
}

// Close releases the serving root.
func (h *Handler) Close() error {
	return h.root.Close()
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		h.sendError(w, r, http.StatusNotImplemented, fmt.Sprintf("Unsupported method ('%s')", r.Method))
		return
	}

	name, trailingSlash := translatePath(r.URL.Path)
	info, err := h.root.Stat(name)
	if err != nil {
		h.sendError(w, r, http.StatusNotFound, "File not found")
		return
	}

	if !info.IsDir() {
		if trailingSlash {
			h.sendError(w, r, http.StatusNotFound, "File not found")
			return
		}
		h.serveFile(w, r, name)
		return
	}

	// The raw path decides: "/docs%2f" must still be redirected so relative links resolve.
	if !strings.HasSuffix(r.URL.EscapedPath(), "/") {
		w.Header().Set("Location", redirectLocation(r.URL.EscapedPath(), r.URL.RawQuery))
		w.Header().Set("Content-Length", "0")
		w.WriteHeader(http.StatusMovedPermanently)
		return
	}

	for _, index := range h.indexFiles {
		indexName := path.Join(name, index)
		if fi, err := h.root.Stat(indexName); err == nil && fi.Mode().IsRegular() {
			h.serveFile(w, r, indexName)
			return
		}
	}
	h.serveListing(w, r, name)
}

func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	f, err := h.open(name)
	if err != nil {
		h.sendError(w, r, http.StatusNotFound, "File not found")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		log.Printf("stat %s: %v", name, err)
		h.sendError(w, r, http.StatusInternalServerError, "Internal error")
		return
	}
	if info.IsDir() {
		h.sendError(w, r, http.StatusNotFound, "File not found")
		return
	}

	// Setting Content-Type up front keeps ServeContent from sniffing the body.
	w.Header().Set("Content-Type", h.types.TypeByName(name))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (h *Handler) serveListing(w http.ResponseWriter, r *http.Request, name string) {
	entries, err := h.readEntries(name)
	if err != nil {
		h.sendError(w, r, http.StatusNotFound, "No permission to list directory")
		return
	}

	body, err := renderListing(r.URL.Path, entries)
	if err != nil {
		log.Printf("render listing for %s: %v", name, err)
		h.sendError(w, r, http.StatusInternalServerError, "Internal error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(body)
	}
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, code int, message string) {
	contentType, body := errorBody(code, message, errorPage)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(code)
	if r.Method != http.MethodHead {
		w.Write(body)
	}
}

// errorBody renders the error page, falling back to the plain status text.
func errorBody(code int, message string, render func(int, string) ([]byte, error)) (contentType string, body []byte) {
	body, err := render(code, message)
	if err != nil {
		log.Printf("render error page for %d: %v", code, err)
		return "text/plain; charset=utf-8", []byte(http.StatusText(code))
	}
	return "text/html;charset=utf-8", body
}
