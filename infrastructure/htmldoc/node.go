package htmldoc

import (
	"fmt"
	"strings"

	"declarative_elements/domain/interfaces"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Node is an element of a parsed document
type Node struct {
	n *html.Node
}

// ID returns the identity of the underlying node
func (e *Node) ID() string { return nodeID(e.n) }

// FindElement finds the first matching descendant
func (e *Node) FindElement(by, value string) (interfaces.Element, error) {
	return findOne(e.n, by, value)
}

// FindElements finds all matching descendants
func (e *Node) FindElements(by, value string) ([]interfaces.Element, error) {
	return findAll(e.n, by, value)
}

// TagName returns the tag name
func (e *Node) TagName() (string, error) {
	return e.n.Data, nil
}

// Text returns the text content with whitespace collapsed
func (e *Node) Text() (string, error) {
	return normalizeSpace(htmlquery.InnerText(e.n)), nil
}

// GetAttribute returns the attribute value, empty when absent
func (e *Node) GetAttribute(name string) (string, error) {
	return htmlquery.SelectAttr(e.n, name), nil
}

// Click is not supported: there is no script or form handling
func (e *Node) Click() error {
	return fmt.Errorf("click on <%s>: %w", e.n.Data, ErrStaticDocument)
}

// SendKeys appends keys to the value attribute of input-like elements
func (e *Node) SendKeys(keys string) error {
	if !isEditable(e.n) {
		return fmt.Errorf("send keys to <%s>: %w", e.n.Data, ErrStaticDocument)
	}
	setAttr(e.n, "value", htmlquery.SelectAttr(e.n, "value")+keys)
	return nil
}

// Clear empties the value attribute of input-like elements
func (e *Node) Clear() error {
	if !isEditable(e.n) {
		return fmt.Errorf("clear <%s>: %w", e.n.Data, ErrStaticDocument)
	}
	setAttr(e.n, "value", "")
	return nil
}

func isEditable(n *html.Node) bool {
	switch strings.ToLower(n.Data) {
	case "input", "textarea":
		return true
	}
	return false
}

func setAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}
