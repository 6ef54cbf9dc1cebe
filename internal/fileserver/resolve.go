package fileserver

import (
	"os"
	"path"
	"strings"
)

// translatePath maps a decoded URL path to a slash separated name relative to the serving root.
//
// The path is cleaned before it is split, so ".." can never climb above the
// root. Empty, "." and ".." segments are dropped, as are segments holding an
// OS path separator (e.g. `a\b` on Windows). The root itself is ".".
// trailingSlash reports whether the request asked for a directory.
func translatePath(urlPath string) (name string, trailingSlash bool) {
	trailingSlash = strings.HasSuffix(strings.TrimRight(urlPath, " \t"), "/")

	cleaned := path.Clean("/" + urlPath)
	words := make([]string, 0, strings.Count(cleaned, "/"))
	for _, word := range strings.Split(cleaned, "/") {
		switch {
		case word == "", word == ".", word == "..":
			continue
		case strings.ContainsRune(word, os.PathSeparator) && os.PathSeparator != '/':
			continue
		case strings.ContainsRune(word, 0):
			continue
		}
		words = append(words, word)
	}

	if len(words) == 0 {
		return ".", trailingSlash
	}
	return strings.Join(words, "/"), trailingSlash
}

// redirectLocation returns the request target with a slash appended to its path.
// Leading slashes are collapsed so the result can't be read as a protocol relative URL.
func redirectLocation(escapedPath, rawQuery string) string {
	loc := "/" + strings.TrimLeft(escapedPath, "/")
	if !strings.HasSuffix(loc, "/") {
		loc += "/"
	}
	if rawQuery != "" {
		loc += "?" + rawQuery
	}
	return loc
}
