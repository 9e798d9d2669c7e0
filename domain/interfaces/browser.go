package interfaces

import "context"

// Anchor is anything elements can be searched from: a page element or a session root
type Anchor interface {
	// FindElement returns the first element matching the selector, or the
	// backend's not-found error
	FindElement(by, value string) (Element, error)

	// FindElements returns every element matching the selector in document order.
	// An empty result is not an error.
	FindElements(by, value string) ([]Element, error)
}

// Reference is an opaque handle to a live page element or to the session root
type Reference interface {
	Anchor

	// ID identifies the underlying node. Two references to the same live node
	// have the same ID.
	ID() string
}

// Element is a reference to a page element
type Element interface {
	Reference

	// TagName returns the lower-case tag name
	TagName() (string, error)

	// Text returns the visible text of the element
	Text() (string, error)

	// GetAttribute returns the attribute value, empty when absent
	GetAttribute(name string) (string, error)

	// Click clicks on the element
	Click() error

	// SendKeys types text into the element
	SendKeys(keys string) error

	// Clear clears the value of an input element
	Clear() error
}

// Session defines the interface for a browser session driven by one backend
type Session interface {
	// Navigate navigates to a URL
	Navigate(ctx context.Context, url string) error

	// Root returns the session root, the anchor for page-wide searches
	Root() Reference

	// CurrentURL returns the current page URL
	CurrentURL(ctx context.Context) (string, error)

	// Title returns the current page title
	Title(ctx context.Context) (string, error)

	// Close closes the session and releases the browser
	Close() error
}
