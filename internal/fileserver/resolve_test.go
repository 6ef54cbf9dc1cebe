package fileserver

import "testing"

func TestTranslatePath(t *testing.T) {
	tests := []struct {
		name         string
		urlPath      string
		wantName     string
		wantTrailing bool
	}{
		{name: "Root", urlPath: "/", wantName: ".", wantTrailing: true},
		{name: "Empty", urlPath: "", wantName: "."},
		{name: "File", urlPath: "/index.html", wantName: "index.html"},
		{name: "Nested file", urlPath: "/docs/readme.txt", wantName: "docs/readme.txt"},
		{name: "Directory", urlPath: "/docs/", wantName: "docs", wantTrailing: true},
		{name: "Duplicate slashes", urlPath: "//docs///readme.txt", wantName: "docs/readme.txt"},
		{name: "Dot segments", urlPath: "/./docs/./readme.txt", wantName: "docs/readme.txt"},
		{name: "Parent inside root", urlPath: "/docs/../index.html", wantName: "index.html"},
		{name: "Traversal above root", urlPath: "/../../etc/passwd", wantName: "etc/passwd"},
		{name: "Traversal only", urlPath: "/../..", wantName: "."},
		{name: "Traversal with trailing slash", urlPath: "/docs/../../", wantName: ".", wantTrailing: true},
		{name: "Spaces kept", urlPath: "/my file.txt", wantName: "my file.txt"},
		{name: "Null byte dropped", urlPath: "/a\x00b/c", wantName: "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotName, gotTrailing := translatePath(tt.urlPath)
			if gotName != tt.wantName {
				t.Errorf("translatePath(%q) name = %q, want %q", tt.urlPath, gotName, tt.wantName)
			}
			if gotTrailing != tt.wantTrailing {
				t.Errorf("translatePath(%q) trailingSlash = %v, want %v", tt.urlPath, gotTrailing, tt.wantTrailing)
			}
		})
	}
}

func TestRedirectLocation(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		rawQuery string
		want     string
	}{
		{name: "Simple", path: "/docs", want: "/docs/"},
		{name: "With query", path: "/docs", rawQuery: "a=1&b=2", want: "/docs/?a=1&b=2"},
		{name: "Escaped", path: "/my%20docs", want: "/my%20docs/"},
		{name: "Protocol relative", path: "//example.com", want: "/example.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redirectLocation(tt.path, tt.rawQuery); got != tt.want {
				t.Errorf("redirectLocation(%q, %q) = %q, want %q", tt.path, tt.rawQuery, got, tt.want)
			}
		})
	}
}
