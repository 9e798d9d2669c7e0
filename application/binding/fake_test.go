package binding

import (
	"errors"
	"fmt"

	"declarative_elements/domain/entities"
	"declarative_elements/domain/interfaces"
)

var errNotFound = errors.New("no such element")

// fakeElement answers searches from a fixed table keyed by "kind=value"
type fakeElement struct {
	id       string
	tag      string
	attrs    map[string]string
	children map[string][]*fakeElement
	calls    int
}

func newFake(id, tag string) *fakeElement {
	return &fakeElement{
		id:       id,
		tag:      tag,
		attrs:    map[string]string{},
		children: map[string][]*fakeElement{},
	}
}

func (f *fakeElement) with(kind, value string, found ...*fakeElement) *fakeElement {
	f.children[kind+"="+value] = found
	return f
}

func (f *fakeElement) ID() string { return f.id }

func (f *fakeElement) FindElement(by, value string) (interfaces.Element, error) {
	f.calls++
	found := f.children[by+"="+value]
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s %q", errNotFound, by, value)
	}
	return found[0], nil
}

func (f *fakeElement) FindElements(by, value string) ([]interfaces.Element, error) {
	f.calls++
	found := f.children[by+"="+value]
	out := make([]interfaces.Element, len(found))
	for i, el := range found {
		out[i] = el
	}
	return out, nil
}

func (f *fakeElement) TagName() (string, error)                 { return f.tag, nil }
func (f *fakeElement) Text() (string, error)                    { return "", nil }
func (f *fakeElement) GetAttribute(name string) (string, error) { return f.attrs[name], nil }
func (f *fakeElement) Click() error                             { return nil }
func (f *fakeElement) SendKeys(string) error                    { return nil }
func (f *fakeElement) Clear() error                             { return nil }

// node is the page object used across the binding tests
type node struct {
	entities.ElementHandle
}

// item is a second page object, for bindings to another type
type item struct {
	entities.ElementHandle
}

func newNodeType() *HandleType {
	return NewHandleType("node", func(h entities.ElementHandle) node { return node{h} })
}

func newItemType() *HandleType {
	return NewHandleType("item", func(h entities.ElementHandle) item { return item{h} })
}
