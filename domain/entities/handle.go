package entities

import "declarative_elements/domain/interfaces"

// Handle wraps one element or session-root reference. Page objects embed
// ElementHandle to satisfy it.
type Handle interface {
	Ref() interfaces.Reference
}

// ElementHandle is the base page object: one reference, compared by identity
type ElementHandle struct {
	ref interfaces.Reference
}

// NewElementHandle - wraps a reference
func NewElementHandle(ref interfaces.Reference) ElementHandle {
	return ElementHandle{ref: ref}
}

// Ref returns the wrapped reference
func (h ElementHandle) Ref() interfaces.Reference {
	return h.ref
}

// Key returns the identity of the wrapped reference, suitable as a map key
func (h ElementHandle) Key() string {
	return KeyOf(h)
}

// Equal reports whether both handles wrap the same live node
func (h ElementHandle) Equal(other Handle) bool {
	return Equal(h, other)
}

// Element returns the wrapped reference as a page element. It fails when the
// handle wraps a session root.
func (h ElementHandle) Element() (interfaces.Element, error) {
	el, ok := h.ref.(interfaces.Element)
	if !ok {
		return nil, &TypeError{Value: h.ref, Expected: "page element reference"}
	}
	return el, nil
}

// TagName - returns tag name of the wrapped element
func (h ElementHandle) TagName() (string, error) {
	el, err := h.Element()
	if err != nil {
		return "", err
	}
	return el.TagName()
}

// Text - returns visible text of the wrapped element
func (h ElementHandle) Text() (string, error) {
	el, err := h.Element()
	if err != nil {
		return "", err
	}
	return el.Text()
}

// Attribute - returns attribute value of the wrapped element
func (h ElementHandle) Attribute(name string) (string, error) {
	el, err := h.Element()
	if err != nil {
		return "", err
	}
	return el.GetAttribute(name)
}

// Click - clicks on the wrapped element
func (h ElementHandle) Click() error {
	el, err := h.Element()
	if err != nil {
		return err
	}
	return el.Click()
}

// SendKeys - types text into the wrapped element
func (h ElementHandle) SendKeys(keys string) error {
	el, err := h.Element()
	if err != nil {
		return err
	}
	return el.SendKeys(keys)
}

// Clear - clears the wrapped input element
func (h ElementHandle) Clear() error {
	el, err := h.Element()
	if err != nil {
		return err
	}
	return el.Clear()
}

// KeyOf returns the identity of the handle's reference, empty for a nil handle
func KeyOf(h Handle) string {
	if h == nil || h.Ref() == nil {
		return ""
	}
	return h.Ref().ID()
}

// Equal reports whether two handles wrap the same reference
func Equal(a, b Handle) bool {
	if a == nil || b == nil || a.Ref() == nil || b.Ref() == nil {
		return (a == nil || a.Ref() == nil) && (b == nil || b.Ref() == nil)
	}
	return a.Ref().ID() == b.Ref().ID()
}
