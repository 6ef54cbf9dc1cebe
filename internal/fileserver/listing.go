package fileserver

import (
	"io/fs"
	"net/url"
	"path"
	"slices"
	"strings"

	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
)

// entry is one line of a directory listing.
type entry struct {
	Name    string
	Dir     bool
	Symlink bool
}

// DisplayName is the visible link text: directories get a "/" suffix, symlinks an "@".
func (e entry) DisplayName() string {
	switch {
	case e.Symlink:
		return e.Name + "@"
	case e.Dir:
		return e.Name + "/"
	}
	return e.Name
}

// Link is the percent-escaped, relative href for the entry.
// A link to a symlinked directory still ends with "/".
func (e entry) Link() string {
	name := e.Name
	if e.Dir {
		name += "/"
	}
	link := (&url.URL{Path: name}).EscapedPath()
	// "a:b" would otherwise parse as a URL with scheme "a".
	if first, _, _ := strings.Cut(link, "/"); strings.Contains(first, ":") {
		link = "./" + link
	}
	return link
}

// readEntries lists the immediate children of the directory name, sorted case-insensitively.
func (h *Handler) readEntries(name string) ([]entry, error) {
	dir, err := h.root.Open(name)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	dirents, err := dir.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	entries := make([]entry, 0, len(dirents))
	for _, de := range dirents {
		e := entry{
			Name:    de.Name(),
			Dir:     de.IsDir(),
			Symlink: de.Type()&fs.ModeSymlink != 0,
		}
		if e.Symlink {
			// Follow the link inside the root only; escaping targets stay plain entries.
			if info, err := h.root.Stat(path.Join(name, e.Name)); err == nil {
				e.Dir = info.IsDir()
			}
		}
		entries = append(entries, e)
	}

	sortEntries(entries)
	return entries, nil
}

func sortEntries(entries []entry) {
	fold := cases.Fold()
	slices.SortStableFunc(entries, func(a, b entry) int {
		if c := strings.Compare(fold.String(a.Name), fold.String(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
}

// renderListing builds the HTML page for a directory listing of displayPath.
func renderListing(displayPath string, entries []entry) ([]byte, error) {
	title := "Directory listing for " + displayPath

	list := element(atom.Ul, nil, text("\n"))
	for _, e := range entries {
		list.AppendChild(element(atom.Li, nil,
			element(atom.A, attr("href", e.Link()), text(e.DisplayName())),
		))
		list.AppendChild(text("\n"))
	}

	return page(title,
		element(atom.H1, nil, text(title)),
		element(atom.Hr, nil),
		list,
		element(atom.Hr, nil),
	)
}
