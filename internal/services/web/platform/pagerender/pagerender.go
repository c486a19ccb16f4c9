// Package pagerender turns the document shell into full page responses.
package pagerender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/louisbranch/showcase/internal/services/web/platform/httpx"
)

var (
	// ErrAnchorMissing reports a shell without the mount anchor element.
	ErrAnchorMissing = errors.New("mount anchor not found in document")
	// ErrAnchorAmbiguous reports a shell with more than one anchor element.
	ErrAnchorAmbiguous = errors.New("mount anchor id is not unique in document")
)

const (
	titleMarker  = "__showcase_title__"
	outletMarker = "__showcase_outlet__"
)

// Shell is a parsed document split around its title and mount anchor.
type Shell struct {
	anchorID string
	lang     string
	head     string
	middle   string
	tail     string
}

// ParseShell parses document and locates the element with id anchorID. The
// root element's lang attribute is set to lang.
func ParseShell(document io.Reader, anchorID string, lang string) (*Shell, error) {
	anchorID = strings.TrimSpace(anchorID)
	if anchorID == "" {
		return nil, errors.New("anchor id is required")
	}
	root, err := html.Parse(document)
	if err != nil {
		return nil, fmt.Errorf("parse document shell: %w", err)
	}

	var anchors []*html.Node
	var title, htmlEl, head *html.Node
	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.DataAtom {
		case atom.Html:
			htmlEl = n
		case atom.Head:
			head = n
		case atom.Title:
			if title == nil {
				title = n
			}
		}
		if attr(n, "id") == anchorID {
			anchors = append(anchors, n)
		}
	})
	switch len(anchors) {
	case 0:
		return nil, fmt.Errorf("%w: #%s", ErrAnchorMissing, anchorID)
	case 1:
	default:
		return nil, fmt.Errorf("%w: #%s", ErrAnchorAmbiguous, anchorID)
	}

	if htmlEl != nil && strings.TrimSpace(lang) != "" {
		setAttr(htmlEl, "lang", lang)
	}
	if title == nil {
		if head == nil {
			return nil, errors.New("document shell has no head element")
		}
		title = &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
		head.AppendChild(title)
	}
	replaceChildren(title, &html.Node{Type: html.TextNode, Data: titleMarker})
	replaceChildren(anchors[0], &html.Node{Type: html.TextNode, Data: outletMarker})

	var rendered bytes.Buffer
	if err := html.Render(&rendered, root); err != nil {
		return nil, fmt.Errorf("render document shell: %w", err)
	}
	prefix, rest, ok := strings.Cut(rendered.String(), titleMarker)
	if !ok {
		return nil, errors.New("document shell title marker lost")
	}
	middle, tail, ok := strings.Cut(rest, outletMarker)
	if !ok {
		return nil, errors.New("document shell outlet marker lost")
	}
	return &Shell{
		anchorID: anchorID,
		lang:     lang,
		head:     prefix,
		middle:   middle,
		tail:     tail,
	}, nil
}

// AnchorID returns the mount anchor id.
func (s *Shell) AnchorID() string {
	return s.anchorID
}

// Lang returns the document language.
func (s *Shell) Lang() string {
	return s.lang
}

// Render writes the document with title and body placed in the anchor.
func (s *Shell) Render(ctx context.Context, w io.Writer, title string, body templ.Component) error {
	if _, err := io.WriteString(w, s.head); err != nil {
		return err
	}
	if _, err := io.WriteString(w, templ.EscapeString(title)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, s.middle); err != nil {
		return err
	}
	if body != nil {
		if err := body.Render(ctx, w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, s.tail)
	return err
}

// WriteDocument renders the full document into a buffer and writes it with
// statusCode, so a failed render never produces a partial page.
func WriteDocument(ctx context.Context, w http.ResponseWriter, shell *Shell, statusCode int, title string, body templ.Component) error {
	if w == nil {
		return nil
	}
	if shell == nil {
		return errors.New("document shell is required")
	}
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	var buf bytes.Buffer
	if err := shell.Render(ctx, &buf, title, body); err != nil {
		return err
	}
	_ = httpx.WriteHTML(w, statusCode, buf.String())
	return nil
}

// RenderFragment renders body alone, for in-app navigation responses.
func RenderFragment(ctx context.Context, body templ.Component) (string, error) {
	if body == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := body.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key string, value string) {
	for idx, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[idx].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func replaceChildren(n *html.Node, child *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(child)
}
