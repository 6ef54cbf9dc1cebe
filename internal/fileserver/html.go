package fileserver

import (
	"bytes"
	"fmt"
	"net/http"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func element(a atom.Atom, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) []html.Attribute {
	return []html.Attribute{{Key: key, Val: val}}
}

// page builds a complete HTML document. Text and attribute values are escaped when rendered.
func page(title string, body ...*html.Node) ([]byte, error) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "HTML"})
	doc.AppendChild(element(atom.Html, attr("lang", "en"),
		element(atom.Head, nil,
			element(atom.Meta, attr("charset", "utf-8")),
			element(atom.Title, nil, text(title)),
		),
		element(atom.Body, nil, body...),
	))

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// errorPage renders the minimal body sent with error responses.
func errorPage(code int, message string) ([]byte, error) {
	return page("Error response",
		element(atom.H1, nil, text("Error response")),
		element(atom.P, nil, text(fmt.Sprintf("Error code: %d", code))),
		element(atom.P, nil, text("Message: "+message+".")),
		element(atom.P, nil, text(fmt.Sprintf("Error code explanation: %d - %s.", code, http.StatusText(code)))),
	)
}
