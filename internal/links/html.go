package links

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML document.
type Document struct {
	root *html.Node
}

// Parse reads an HTML document. Like a browser, the parser repairs malformed
// markup rather than failing on it.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// Links returns every <a> element carrying an href attribute, in document
// order, as present at the time of the call.
func (d *Document) Links() []Element {
	var out []Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			el := nodeElement{n}
			if _, ok := el.Attr("href"); ok {
				out = append(out, el)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return out
}

// Render writes the document back out as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// TagHTML parses the document from r, tags its external links for origin and
// renders the result to w.
func TagHTML(r io.Reader, w io.Writer, origin string) (int, error) {
	doc, err := Parse(r)
	if err != nil {
		return 0, err
	}
	n := Tag(origin, doc.Links())
	if err := doc.Render(w); err != nil {
		return n, fmt.Errorf("render html: %w", err)
	}
	return n, nil
}

type nodeElement struct{ n *html.Node }

func (e nodeElement) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e nodeElement) SetAttr(name, value string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}
