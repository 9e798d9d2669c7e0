package entities

import (
	"testing"

	"declarative_elements/domain/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRef struct {
	id string
}

func (r fakeRef) ID() string { return r.id }

func (r fakeRef) FindElement(string, string) (interfaces.Element, error) { return nil, nil }

func (r fakeRef) FindElements(string, string) ([]interfaces.Element, error) { return nil, nil }

type fakeEl struct {
	fakeRef
	attrs map[string]string
}

func (e fakeEl) TagName() (string, error)                 { return "input", nil }
func (e fakeEl) Text() (string, error)                    { return "  Search \n here ", nil }
func (e fakeEl) GetAttribute(name string) (string, error) { return e.attrs[name], nil }
func (e fakeEl) Click() error                             { return nil }
func (e fakeEl) SendKeys(string) error                    { return nil }
func (e fakeEl) Clear() error                             { return nil }

type button struct {
	ElementHandle
}

func TestHandleEquality(t *testing.T) {
	a := NewElementHandle(fakeRef{id: "1"})
	b := button{NewElementHandle(fakeRef{id: "1"})}
	c := NewElementHandle(fakeRef{id: "2"})

	assert.True(t, a.Equal(b))
	assert.True(t, Equal(b, a))
	assert.False(t, a.Equal(c))
	assert.Equal(t, "1", a.Key())
	assert.Equal(t, KeyOf(a), KeyOf(b))

	seen := map[string]bool{a.Key(): true}
	assert.True(t, seen[KeyOf(b)])
}

func TestHandleEqualityNil(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.True(t, Equal(nil, NewElementHandle(nil)))
	assert.False(t, Equal(nil, NewElementHandle(fakeRef{id: "1"})))
	assert.Equal(t, "", KeyOf(nil))
}

func TestHandleElementOfRoot(t *testing.T) {
	h := NewElementHandle(fakeRef{id: "session"})
	_, err := h.Element()
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)

	_, err = h.TagName()
	assert.ErrorAs(t, err, &typeErr)
	assert.ErrorAs(t, h.Click(), &typeErr)
}

func TestDescribe(t *testing.T) {
	el := fakeEl{fakeRef: fakeRef{id: "7"}, attrs: map[string]string{"name": "go", "type": "submit"}}
	pe := Describe(NewElementHandle(el))

	assert.Equal(t, PageElement{
		Key:        "7",
		TagName:    "input",
		Text:       "Search here",
		Attributes: map[string]string{"name": "go", "type": "submit"},
	}, pe)

	root := Describe(NewElementHandle(fakeRef{id: "session"}))
	assert.True(t, root.IsRoot)
	assert.Equal(t, "session", root.Key)

	require.NotPanics(t, func() {
		assert.Equal(t, PageElement{Attributes: map[string]string{}}, Describe(nil))
		assert.Equal(t, PageElement{Attributes: map[string]string{}}, Describe(NewElementHandle(nil)))
	})
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", truncateString("abc", 5))
	assert.Equal(t, "ab...", truncateString("abcdef", 2))
	assert.Equal(t, "при...", truncateString("привет", 3))
	assert.Equal(t, "héllo", truncateString("héllo", 5))
}
