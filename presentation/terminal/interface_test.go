package terminal

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"declarative_elements/domain/entities"
	"declarative_elements/infrastructure/config"
	"declarative_elements/infrastructure/htmldoc"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><head><title>Shop</title></head><body>
<ul id="cart"><li class="line">Apple</li><li class="line">Pear</li></ul>
<input type="text" name="coupon" value="">
</body></html>`

func newTerminal(t *testing.T, input string) (*TerminalInterface, *bytes.Buffer) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg, err := config.FromEnv(func(string) string { return "" })
	require.NoError(t, err)
	cfg.WaitTimeout = 200 * time.Millisecond
	cfg.WaitInterval = 10 * time.Millisecond

	session, waiter, err := OpenSession(cfg, logger)
	require.NoError(t, err)
	doc, err := htmldoc.ParseString(page)
	require.NoError(t, err)
	session.(*htmldoc.Session).Load(doc, "memory://shop")

	out := &bytes.Buffer{}
	return NewTerminalInterface(session, waiter, logger, strings.NewReader(input), out), out
}

func TestRunFindSelectParent(t *testing.T) {
	term, out := newTerminal(t, "findall css li.line\nselect 1\nparent\nquit\n")

	require.NoError(t, term.Run(context.Background()))
	text := out.String()
	assert.Contains(t, text, "Apple")
	assert.Contains(t, text, "Pear")
	assert.Contains(t, text, "id=cart")
	assert.Contains(t, text, "Bye!")
	assert.Equal(t, "cart", attribute(t, term, "id"))
}

func TestExecuteChildrenAndSiblings(t *testing.T) {
	term, out := newTerminal(t, "")
	ctx := context.Background()

	require.NoError(t, term.Execute(ctx, "find id cart"))
	require.NoError(t, term.Execute(ctx, "select 0"))
	require.NoError(t, term.Execute(ctx, "children"))
	assert.Len(t, term.listing, 2)

	require.NoError(t, term.Execute(ctx, "select 0"))
	require.NoError(t, term.Execute(ctx, "siblings"))
	assert.Len(t, term.listing, 2)
	assert.Contains(t, out.String(), "Pear")

	require.NoError(t, term.Execute(ctx, "relatives following-sibling li"))
	require.Len(t, term.listing, 1)
}

func TestExecuteWaitAndType(t *testing.T) {
	term, _ := newTerminal(t, "")
	ctx := context.Background()

	require.NoError(t, term.Execute(ctx, "wait name coupon"))
	require.NoError(t, term.Execute(ctx, "select 0"))
	require.NoError(t, term.Execute(ctx, "type SAVE 10"))
	assert.Equal(t, "SAVE 10", attribute(t, term, "value"))

	require.NoError(t, term.Execute(ctx, "clear"))
	assert.Equal(t, "", attribute(t, term, "value"))

	err := term.Execute(ctx, "click")
	assert.ErrorIs(t, err, htmldoc.ErrStaticDocument)
}

func TestExecuteErrors(t *testing.T) {
	term, _ := newTerminal(t, "")
	ctx := context.Background()

	var configErr *entities.ConfigError
	assert.ErrorAs(t, term.Execute(ctx, "find jquery li"), &configErr)
	assert.ErrorIs(t, term.Execute(ctx, "find id missing"), htmldoc.ErrNoSuchElement)
	assert.ErrorIs(t, term.Execute(ctx, "wait id missing"), htmldoc.ErrNoSuchElement)
	assert.Error(t, term.Execute(ctx, "select 3"))
	assert.Error(t, term.Execute(ctx, "parent"))
	assert.Error(t, term.Execute(ctx, "dance"))
}

func TestRunReportsErrorsAndContinues(t *testing.T) {
	term, out := newTerminal(t, "find id missing\nroot")

	require.NoError(t, term.Run(context.Background()))
	assert.Contains(t, out.String(), "Error:")
	assert.Contains(t, out.String(), "(root)")
}

func TestParseSelector(t *testing.T) {
	sel, err := parseSelector([]string{"link", "Show", "all"})
	require.NoError(t, err)
	assert.Equal(t, entities.Selector{Kind: entities.ByLinkText, Value: "Show all"}, sel)

	sel, err = parseSelector([]string{entities.ByXPATH, "//a"})
	require.NoError(t, err)
	assert.Equal(t, entities.ByXPATH, sel.Kind)

	_, err = parseSelector([]string{"css"})
	assert.Error(t, err)
}

func attribute(t *testing.T, term *TerminalInterface, name string) string {
	t.Helper()
	require.NotNil(t, term.current)
	v, err := entities.NewElementHandle(term.current.Ref()).Attribute(name)
	require.NoError(t, err)
	return v
}
