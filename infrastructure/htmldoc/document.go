// Package htmldoc implements the anchor contract over a parsed, static HTML
// document. XPath is evaluated with htmlquery, CSS with cascadia through goquery.
// Nothing is rendered, so text is the raw text content and elements cannot be
// clicked.
package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"declarative_elements/domain/entities"
	"declarative_elements/domain/interfaces"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

var (
	// ErrNoSuchElement is returned by FindElement when nothing matches
	ErrNoSuchElement = errors.New("no such element")
	// ErrInvalidSelector is returned for XPath or CSS expressions that do not compile
	ErrInvalidSelector = entities.ErrInvalidSelector
	// ErrStaticDocument is returned by interactions a static document cannot perform
	ErrStaticDocument = errors.New("not supported on a static document")
)

// Document is a parsed HTML document. It is the session root reference.
type Document struct {
	root *html.Node
}

// Parse - parses an HTML document
func Parse(r io.Reader) (*Document, error) {
	root, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString - parses an HTML document held in a string
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ID returns the identity of the document node
func (d *Document) ID() string {
	return nodeID(d.root)
}

// Title returns the text of the document title
func (d *Document) Title() string {
	if n := htmlquery.FindOne(d.root, "//title"); n != nil {
		return strings.TrimSpace(htmlquery.InnerText(n))
	}
	return ""
}

// FindElement finds the first matching element in the document
func (d *Document) FindElement(by, value string) (interfaces.Element, error) {
	return findOne(d.root, by, value)
}

// FindElements finds all matching elements in the document
func (d *Document) FindElements(by, value string) ([]interfaces.Element, error) {
	return findAll(d.root, by, value)
}

func nodeID(n *html.Node) string {
	return fmt.Sprintf("node-%p", n)
}

func findOne(top *html.Node, by, value string) (interfaces.Element, error) {
	nodes, err := match(top, by, value)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: unable to locate element by %s %q", ErrNoSuchElement, by, value)
	}
	return &Node{n: nodes[0]}, nil
}

func findAll(top *html.Node, by, value string) ([]interfaces.Element, error) {
	nodes, err := match(top, by, value)
	if err != nil {
		return nil, err
	}
	elements := make([]interfaces.Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &Node{n: n})
	}
	return elements, nil
}

// match - finds the elements below top for one location strategy, in document order
func match(top *html.Node, by, value string) ([]*html.Node, error) {
	switch by {
	case entities.ByXPATH:
		nodes, err := htmlquery.QueryAll(top, value)
		if err != nil {
			return nil, fmt.Errorf("%w: xpath %q: %v", ErrInvalidSelector, value, err)
		}
		return elementsOnly(nodes), nil
	case entities.ByCSSSelector:
		sel, err := cascadia.Compile(value)
		if err != nil {
			return nil, fmt.Errorf("%w: css %q: %v", ErrInvalidSelector, value, err)
		}
		return goquery.NewDocumentFromNode(top).FindMatcher(sel).Nodes, nil
	case entities.ByID:
		return filter(top, attrEquals("id", value)), nil
	case entities.ByName:
		return filter(top, attrEquals("name", value)), nil
	case entities.ByTagName:
		tag := strings.ToLower(value)
		return filter(top, func(s *goquery.Selection) bool {
			return goquery.NodeName(s) == tag
		}), nil
	case entities.ByClassName:
		return filter(top, func(s *goquery.Selection) bool {
			return s.HasClass(value)
		}), nil
	case entities.ByLinkText:
		return filter(top, func(s *goquery.Selection) bool {
			return s.Is("a") && normalizeSpace(s.Text()) == value
		}), nil
	case entities.ByPartialLinkText:
		return filter(top, func(s *goquery.Selection) bool {
			return s.Is("a") && strings.Contains(normalizeSpace(s.Text()), value)
		}), nil
	}
	return nil, &entities.ConfigError{
		Reason: "selector kind is not supported",
		Value:  by,
		Valid:  entities.SupportedSelectorKinds(),
	}
}

// filter - keeps the descendants of top accepted by keep
func filter(top *html.Node, keep func(*goquery.Selection) bool) []*html.Node {
	return goquery.NewDocumentFromNode(top).Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return keep(s)
	}).Nodes
}

func attrEquals(name, value string) func(*goquery.Selection) bool {
	return func(s *goquery.Selection) bool {
		v, ok := s.Attr(name)
		return ok && v == value
	}
}

func elementsOnly(nodes []*html.Node) []*html.Node {
	out := nodes[:0:0]
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
	}
	return out
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
