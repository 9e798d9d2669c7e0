package htmldoc

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"declarative_elements/domain/entities"
	"declarative_elements/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDocument(t *testing.T) *Document {
	t.Helper()
	f, err := os.Open("testdata/page.html")
	require.NoError(t, err)
	defer f.Close()
	doc, err := Parse(f)
	require.NoError(t, err)
	return doc
}

func texts(t *testing.T, elements []interfaces.Element) []string {
	t.Helper()
	out := make([]string, 0, len(elements))
	for _, el := range elements {
		text, err := el.Text()
		require.NoError(t, err)
		out = append(out, text)
	}
	return out
}

func TestDocumentFindElementsBySelectorKind(t *testing.T) {
	doc := loadDocument(t)

	cases := []struct {
		by, value string
		want      []string
	}{
		{entities.ByXPATH, "//li", []string{"One", "Two", "Three"}},
		{entities.ByCSSSelector, "li.selected", []string{"Two"}},
		{entities.ByTagName, "LI", []string{"One", "Two", "Three"}},
		{entities.ByClassName, "selected", []string{"Two"}},
		{entities.ByLinkText, "Next page", []string{"Next page"}},
		{entities.ByPartialLinkText, "all", []string{"Show all items"}},
	}
	for _, tc := range cases {
		t.Run(tc.by, func(t *testing.T) {
			found, err := doc.FindElements(tc.by, tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.want, texts(t, found))
		})
	}
}

func TestDocumentFindElementByAttribute(t *testing.T) {
	doc := loadDocument(t)

	main, err := doc.FindElement(entities.ByID, "main")
	require.NoError(t, err)
	class, err := main.GetAttribute("class")
	require.NoError(t, err)
	assert.Equal(t, "panel wide", class)

	list, err := doc.FindElement(entities.ByName, "items")
	require.NoError(t, err)
	tag, err := list.TagName()
	require.NoError(t, err)
	assert.Equal(t, "ul", tag)
}

func TestDocumentRelativeSearch(t *testing.T) {
	doc := loadDocument(t)

	second, err := doc.FindElement(entities.ByClassName, "selected")
	require.NoError(t, err)

	parent, err := second.FindElement(entities.ByXPATH, "./parent::*")
	require.NoError(t, err)
	list, err := doc.FindElement(entities.ByTagName, "ul")
	require.NoError(t, err)
	assert.Equal(t, list.ID(), parent.ID())

	next, err := second.FindElements(entities.ByXPATH, "./following-sibling::li")
	require.NoError(t, err)
	assert.Equal(t, []string{"Three"}, texts(t, next))

	items, err := list.FindElements(entities.ByCSSSelector, "li")
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestDocumentIdentityIsStable(t *testing.T) {
	doc := loadDocument(t)

	a, err := doc.FindElement(entities.ByID, "main")
	require.NoError(t, err)
	b, err := doc.FindElement(entities.ByCSSSelector, "div.panel")
	require.NoError(t, err)
	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, doc.ID(), a.ID())
}

func TestDocumentNotFoundAndEmpty(t *testing.T) {
	doc := loadDocument(t)

	_, err := doc.FindElement(entities.ByID, "missing")
	assert.ErrorIs(t, err, ErrNoSuchElement)

	found, err := doc.FindElements(entities.ByID, "missing")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestDocumentInvalidSelectors(t *testing.T) {
	doc := loadDocument(t)

	_, err := doc.FindElements(entities.ByXPATH, "//li[")
	assert.ErrorIs(t, err, ErrInvalidSelector)

	_, err = doc.FindElements(entities.ByCSSSelector, "li[")
	assert.ErrorIs(t, err, ErrInvalidSelector)

	_, err = doc.FindElements("bogus", "x")
	var configErr *entities.ConfigError
	assert.ErrorAs(t, err, &configErr)
}

func TestDocumentTitle(t *testing.T) {
	assert.Equal(t, "Catalog", loadDocument(t).Title())
}

func TestNodeInteractions(t *testing.T) {
	doc := loadDocument(t)

	input, err := doc.FindElement(entities.ByName, "filter")
	require.NoError(t, err)

	require.NoError(t, input.SendKeys("def"))
	value, err := input.GetAttribute("value")
	require.NoError(t, err)
	assert.Equal(t, "abcdef", value)

	require.NoError(t, input.Clear())
	value, err = input.GetAttribute("value")
	require.NoError(t, err)
	assert.Empty(t, value)

	assert.ErrorIs(t, input.Click(), ErrStaticDocument)

	list, err := doc.FindElement(entities.ByTagName, "ul")
	require.NoError(t, err)
	assert.ErrorIs(t, list.SendKeys("x"), ErrStaticDocument)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSessionNavigate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, "<html><head><title>Remote</title></head><body><p id='x'>hi</p></body></html>")
	}))
	defer server.Close()

	session := NewSession(quietLogger(), time.Second)
	assert.Nil(t, session.Root())

	ctx := context.Background()
	require.NoError(t, session.Navigate(ctx, server.URL+"/"))

	title, err := session.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Remote", title)
	current, err := session.CurrentURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/", current)

	p, err := session.Root().FindElement(entities.ByID, "x")
	require.NoError(t, err)
	text, err := p.Text()
	require.NoError(t, err)
	assert.Equal(t, "hi", text)

	assert.Error(t, session.Navigate(ctx, server.URL+"/missing"))
	assert.Error(t, session.Navigate(ctx, "ftp://example.com/"))
	assert.NoError(t, session.Close())
}

func TestSessionNavigateFile(t *testing.T) {
	session := NewSession(quietLogger(), time.Second)
	require.NoError(t, session.Navigate(context.Background(), "testdata/page.html"))

	title, err := session.Title(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Catalog", title)
}
