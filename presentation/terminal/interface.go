package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"declarative_elements/application/binding"
	"declarative_elements/application/pageobjects"
	"declarative_elements/domain/entities"
	"declarative_elements/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// selectorAliases are the short kind names accepted at the prompt
var selectorAliases = map[string]string{
	"id":      entities.ByID,
	"name":    entities.ByName,
	"tag":     entities.ByTagName,
	"class":   entities.ByClassName,
	"css":     entities.ByCSSSelector,
	"link":    entities.ByLinkText,
	"partial": entities.ByPartialLinkText,
	"xpath":   entities.ByXPATH,
}

const helpText = `Commands:
  open <url>                 load a page
  find <kind> <value>        first match below the current element
  findall <kind> <value>     all matches below the current element
  wait <kind> <value>        like find, polling until the element appears
  select <n>                 make element n of the last listing current
  parent | children | siblings
  relatives <axis> [tag]     elements on an XPath axis
  root                       go back to the document
  show                       describe the current element
  type <text> | clear | click
  quit
Kinds: id, name, tag, class, css, link, partial, xpath`

type TerminalInterface struct {
	session interfaces.Session
	waiter  binding.Waiter
	logger  *logrus.Logger
	reader  *bufio.Reader
	out     io.Writer

	current entities.Handle
	listing []entities.Handle
}

func NewTerminalInterface(session interfaces.Session, waiter binding.Waiter, logger *logrus.Logger, in io.Reader, out io.Writer) *TerminalInterface {
	return &TerminalInterface{
		session: session,
		waiter:  waiter,
		logger:  logger,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

func (t *TerminalInterface) Run(ctx context.Context) error {
	fmt.Fprintln(t.out, "Declarative elements")
	fmt.Fprintln(t.out, "====================")
	fmt.Fprintln(t.out, "Type 'help' for commands, or 'quit' to exit")
	fmt.Fprintln(t.out)

	for {
		fmt.Fprint(t.out, "> ")
		input, err := t.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := errors.Is(err, io.EOF)

		input = strings.TrimSpace(input)
		if input == "quit" || input == "exit" || input == "q" {
			fmt.Fprintln(t.out, "Bye!")
			return nil
		}
		if input != "" {
			if err := t.Execute(ctx, input); err != nil {
				fmt.Fprintf(t.out, "Error: %v\n", err)
			}
		}
		if eof {
			return nil
		}
	}
}

// Execute - runs one command line
func (t *TerminalInterface) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	t.logger.Debugf("Executing command: %s", line)

	switch cmd {
	case "help":
		fmt.Fprintln(t.out, helpText)
		return nil
	case "open":
		if len(args) != 1 {
			return fmt.Errorf("usage: open <url>")
		}
		return t.open(ctx, args[0])
	case "find", "findall", "wait":
		sel, err := parseSelector(args)
		if err != nil {
			return err
		}
		return t.find(ctx, cmd, sel)
	case "select":
		if len(args) != 1 {
			return fmt.Errorf("usage: select <n>")
		}
		return t.selectListed(args[0])
	case "root":
		t.current = nil
		return t.show()
	case "show":
		return t.show()
	case "parent", "children", "siblings", "relatives":
		return t.navigate(cmd, args)
	case "type":
		return t.interact(func(h entities.ElementHandle) error {
			return h.SendKeys(strings.Join(args, " "))
		})
	case "clear":
		return t.interact(entities.ElementHandle.Clear)
	case "click":
		return t.interact(entities.ElementHandle.Click)
	}
	return fmt.Errorf("unknown command %q, type 'help'", cmd)
}

func (t *TerminalInterface) open(ctx context.Context, url string) error {
	if err := t.session.Navigate(ctx, url); err != nil {
		return err
	}
	t.current, t.listing = nil, nil

	title, err := t.session.Title(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(t.out, "Opened %s (%s)\n", url, title)
	return nil
}

// anchor returns the current element, or the document root
func (t *TerminalInterface) anchor() (interfaces.Anchor, error) {
	if t.current != nil {
		return t.current.Ref(), nil
	}
	root := t.session.Root()
	if root == nil {
		return nil, fmt.Errorf("no page loaded, use 'open <url>'")
	}
	return root, nil
}

func (t *TerminalInterface) find(ctx context.Context, cmd string, sel entities.Selector) error {
	anchor, err := t.anchor()
	if err != nil {
		return err
	}

	declare := binding.Route
	if cmd == "findall" {
		declare = binding.Routes
	}
	decl, err := declare(pageobjects.DomNodeType, sel.Kind, sel.Value)
	if err != nil {
		return err
	}
	d, _ := decl.Descriptor()
	route, err := binding.RouteOf(d, nil)
	if err != nil {
		return err
	}

	var res binding.Result
	if cmd == "wait" {
		res, err = t.waiter.Until(ctx, route, anchor)
	} else {
		res, err = route(anchor)
	}
	if err != nil {
		return err
	}
	t.list(res.All())
	return nil
}

func (t *TerminalInterface) navigate(cmd string, args []string) error {
	if t.current == nil {
		return fmt.Errorf("%s needs a current element, use 'select <n>'", cmd)
	}
	node, err := binding.As[pageobjects.DomNode](pageobjects.DomNodeType.New(t.current.Ref()))
	if err != nil {
		return err
	}

	switch cmd {
	case "parent":
		parent, err := node.Parent()
		if err != nil {
			return err
		}
		t.current = parent
		return t.show()
	case "children":
		children, err := node.Children()
		if err != nil {
			return err
		}
		t.list(handles(children))
	case "siblings":
		siblings, err := node.Siblings()
		if err != nil {
			return err
		}
		t.list(handles(siblings))
	case "relatives":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("usage: relatives <axis> [tag]")
		}
		relatives, err := node.Relatives(args[0], strings.Join(args[1:], ""))
		if err != nil {
			return err
		}
		t.list(handles(relatives))
	}
	return nil
}

func (t *TerminalInterface) selectListed(arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 || n >= len(t.listing) {
		return fmt.Errorf("no element %q in the last listing of %d", arg, len(t.listing))
	}
	t.current = t.listing[n]
	return t.show()
}

func (t *TerminalInterface) show() error {
	if t.current != nil {
		renderHandles(t.out, []entities.Handle{t.current})
		return nil
	}
	root := t.session.Root()
	if root == nil {
		return fmt.Errorf("no page loaded, use 'open <url>'")
	}
	renderHandles(t.out, []entities.Handle{entities.NewElementHandle(root)})
	return nil
}

func (t *TerminalInterface) interact(fn func(entities.ElementHandle) error) error {
	if t.current == nil {
		return fmt.Errorf("no current element, use 'select <n>'")
	}
	if err := fn(entities.NewElementHandle(t.current.Ref())); err != nil {
		return err
	}
	return t.show()
}

func (t *TerminalInterface) list(found []entities.Handle) {
	t.listing = found
	renderHandles(t.out, found)
}

// Close - closes the session
func (t *TerminalInterface) Close() error {
	return t.session.Close()
}

// parseSelector - reads "<kind> <value...>", kind being an alias or a full kind name
func parseSelector(args []string) (entities.Selector, error) {
	if len(args) < 2 {
		return entities.Selector{}, fmt.Errorf("usage: <kind> <value>")
	}
	kind := args[0]
	if full, ok := selectorAliases[kind]; ok {
		kind = full
	}
	return entities.NewSelector(kind, strings.Join(args[1:], " "))
}

func handles[H entities.Handle](hs []H) []entities.Handle {
	out := make([]entities.Handle, len(hs))
	for i, h := range hs {
		out[i] = h
	}
	return out
}
